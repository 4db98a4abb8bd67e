package models

import "time"

// RawListing holds the fields of one ad card exactly as extracted from
// the page (or as read from a Web Scraper CSV export), before cleaning.
type RawListing struct {
	Category string // category key the listing was scraped from
	Type     string // item type, e.g. "habits", "chaussures"
	Title    string
	PriceRaw string // e.g. "2 500 CFA", "Prix sur demande"
	Location string
	ImageURL string
	URL      string
	Page     int // page number where this listing was found
}

// Listing is a cleaned, normalized listing.
type Listing struct {
	Category string   `json:"category"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	PriceRaw string   `json:"price_raw"` // original price text, always preserved
	Price    *float64 `json:"price"`     // nil when PriceRaw could not be coerced
	Location string   `json:"location"`
	ImageURL string   `json:"image_url"`
	URL      string   `json:"url"`
	Page     int      `json:"page"`
}

// HasPrice reports whether the price was successfully coerced.
func (l *Listing) HasPrice() bool {
	return l.Price != nil
}

// PageResult is the outcome of fetching a single page. Exactly one of
// HTML or Err is meaningful.
type PageResult struct {
	Page int
	URL  string
	HTML string
	Err  error
}

// PageError describes one failed page fetch inside a batch.
type PageError struct {
	Page    int    `json:"page"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// ScrapeBatch is the in-memory result of one scrape run or CSV import.
type ScrapeBatch struct {
	Listings   []Listing   `json:"listings"`
	PageErrors []PageError `json:"page_errors"`
	ScrapedAt  time.Time   `json:"scraped_at"`
}

// HistogramBucket is one bar of the price distribution.
type HistogramBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// LocationCount pairs a location with its listing count.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// InsightReport holds the aggregate metrics computed from a batch.
type InsightReport struct {
	TotalListings  int            `json:"total_listings"`
	WithPrice      int            `json:"with_price"`
	WithoutPrice   int            `json:"without_price"`
	MinPrice       float64        `json:"min_price"`
	MedianPrice    float64        `json:"median_price"`
	MeanPrice      float64        `json:"mean_price"`
	MaxPrice       float64        `json:"max_price"`
	ListingsByType map[string]int `json:"listings_by_type"`
	ListingsByCat  map[string]int `json:"listings_by_category"`
	// MeanPriceByType covers priced listings only.
	MeanPriceByType map[string]float64 `json:"mean_price_by_type"`
	TopLocations    []LocationCount    `json:"top_locations"`
	PriceHistogram  []HistogramBucket  `json:"price_histogram"`
}
