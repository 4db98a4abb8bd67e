package parser

import (
	"fmt"
	"strings"

	"coinafrique-scraper/config"
	"coinafrique-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// Parser extracts listing data from category page HTML using a
// configurable selector set.
type Parser struct {
	selectors config.Selectors
}

// New creates a Parser with the given selector set.
func New(selectors config.Selectors) *Parser {
	return &Parser{selectors: selectors}
}

// ParsePage extracts the listing cards of one category page. Cards
// from which no field at all can be extracted are skipped; a missing
// individual field leaves that field empty but keeps the listing.
func (p *Parser) ParsePage(htmlContent string, cat config.Category, page int) ([]models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var listings []models.RawListing

	doc.Find(p.selectors.Card).Each(func(i int, s *goquery.Selection) {
		listing := p.extractCard(s, cat, page)
		if listing != nil {
			listings = append(listings, *listing)
		}
	})

	return listings, nil
}

// extractCard pulls the fields of a single ad card.
func (p *Parser) extractCard(s *goquery.Selection, cat config.Category, page int) *models.RawListing {
	price := strings.TrimSpace(s.Find(p.selectors.Price).First().Text())
	location := strings.TrimSpace(s.Find(p.selectors.Location).First().Text())
	image := s.Find(p.selectors.Image).First().AttrOr("src", "")
	title := strings.TrimSpace(s.Find(p.selectors.Title).First().Text())

	url := s.Find(p.selectors.Link).First().AttrOr("href", "")
	if url == "" {
		url = s.Find("a[href]").First().AttrOr("href", "")
	}
	if url != "" && strings.HasPrefix(url, "/") {
		url = baseOf(cat.URL) + url
	}

	// A card with no extractable field is markup we do not
	// understand; skip the listing, not the page.
	if price == "" && location == "" && image == "" && title == "" && url == "" {
		return nil
	}

	return &models.RawListing{
		Category: cat.Key,
		Type:     cat.Type,
		Title:    title,
		PriceRaw: price,
		Location: location,
		ImageURL: image,
		URL:      url,
		Page:     page,
	}
}

// baseOf returns the scheme://host part of a category URL.
func baseOf(rawURL string) string {
	rest := rawURL
	scheme := ""
	if idx := strings.Index(rest, "://"); idx != -1 {
		scheme = rest[:idx+3]
		rest = rest[idx+3:]
	}
	if idx := strings.Index(rest, "/"); idx != -1 {
		rest = rest[:idx]
	}
	return scheme + rest
}
