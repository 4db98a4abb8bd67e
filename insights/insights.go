package insights

import (
	"math"
	"sort"

	"coinafrique-scraper/models"
)

// HistogramBuckets is the number of bars in the price distribution.
const HistogramBuckets = 10

// TopLocationLimit caps the locations returned in the report.
const TopLocationLimit = 10

// Generate computes the aggregate metrics of a batch. It never fails:
// an empty input yields a zero report that presenters render as a
// "no data" state. The input is never mutated.
func Generate(listings []models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		ListingsByType:  make(map[string]int),
		ListingsByCat:   make(map[string]int),
		MeanPriceByType: make(map[string]float64),
	}

	var prices []float64
	byLocation := make(map[string]int)
	priceSumByType := make(map[string]float64)
	priceCountByType := make(map[string]int)

	for i := range listings {
		l := &listings[i]
		report.TotalListings++

		if l.Type != "" {
			report.ListingsByType[l.Type]++
		}
		if l.Category != "" {
			report.ListingsByCat[l.Category]++
		}
		if l.Location != "" {
			byLocation[l.Location]++
		}
		if l.HasPrice() {
			prices = append(prices, *l.Price)
			if l.Type != "" {
				priceSumByType[l.Type] += *l.Price
				priceCountByType[l.Type]++
			}
		}
	}

	for typ, sum := range priceSumByType {
		report.MeanPriceByType[typ] = sum / float64(priceCountByType[typ])
	}

	report.WithPrice = len(prices)
	report.WithoutPrice = report.TotalListings - report.WithPrice

	if len(prices) > 0 {
		sort.Float64s(prices)
		report.MinPrice = prices[0]
		report.MaxPrice = prices[len(prices)-1]
		report.MedianPrice = median(prices)

		var total float64
		for _, p := range prices {
			total += p
		}
		report.MeanPrice = total / float64(len(prices))

		report.PriceHistogram = histogram(prices, HistogramBuckets)
	}

	report.TopLocations = topLocations(byLocation, TopLocationLimit)

	return report
}

// median expects a sorted, non-empty slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// histogram splits sorted prices into fixed-width buckets.
func histogram(sorted []float64, buckets int) []models.HistogramBucket {
	low, high := sorted[0], sorted[len(sorted)-1]
	if low == high {
		return []models.HistogramBucket{{Low: low, High: high, Count: len(sorted)}}
	}

	width := (high - low) / float64(buckets)
	result := make([]models.HistogramBucket, buckets)
	for i := range result {
		result[i].Low = low + float64(i)*width
		result[i].High = low + float64(i+1)*width
	}

	for _, p := range sorted {
		idx := int(math.Floor((p - low) / width))
		if idx >= buckets {
			idx = buckets - 1
		}
		result[idx].Count++
	}

	return result
}

// topLocations returns the most frequent locations, count-descending
// with alphabetical tie-break.
func topLocations(byLocation map[string]int, limit int) []models.LocationCount {
	locations := make([]models.LocationCount, 0, len(byLocation))
	for loc, count := range byLocation {
		locations = append(locations, models.LocationCount{Location: loc, Count: count})
	}
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].Count != locations[j].Count {
			return locations[i].Count > locations[j].Count
		}
		return locations[i].Location < locations[j].Location
	})
	if len(locations) > limit {
		locations = locations[:limit]
	}
	return locations
}
