package filter

import (
	"strings"

	"coinafrique-scraper/config"
	"coinafrique-scraper/models"
)

// Filter applies dashboard filter criteria to cleaned listings.
type Filter struct {
	criteria config.Filters
}

// New creates a Filter for the given criteria.
func New(criteria config.Filters) *Filter {
	return &Filter{criteria: criteria}
}

// Apply returns the listings matching all criteria, in input order.
func (f *Filter) Apply(listings []models.Listing) []models.Listing {
	filtered := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if f.matches(l) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// matches checks a single listing against all criteria.
func (f *Filter) matches(l models.Listing) bool {
	if len(f.criteria.Types) > 0 && !containsFold(f.criteria.Types, l.Type) {
		return false
	}

	if q := strings.TrimSpace(f.criteria.LocationQuery); q != "" {
		if !strings.Contains(strings.ToLower(l.Location), strings.ToLower(q)) {
			return false
		}
	}

	if !l.HasPrice() {
		return f.criteria.IncludeNoPrice
	}
	if *l.Price < f.criteria.MinPrice {
		return false
	}
	if f.criteria.MaxPrice > 0 && *l.Price > f.criteria.MaxPrice {
		return false
	}

	return true
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
