package cleaner

import (
	"testing"

	"coinafrique-scraper/models"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantNil  bool
	}{
		// Space-grouped CFA prices as shown on the site
		{"space grouped", "2 500 FCFA", 2500, false},
		{"nbsp grouped", "2 500 CFA", 2500, false},
		{"large space grouped", "1 200 000 CFA", 1200000, false},

		// Comma/dot grouping and decimals
		{"comma grouped with decimals", "1,200.50", 1200.50, false},
		{"comma decimal", "1200,50", 1200.50, false},
		{"dot grouped", "2.500 CFA", 2500, false},
		{"single decimal digit", "1200.5", 1200.5, false},

		// Already-clean numbers are a no-op
		{"plain integer", "2500", 2500, false},
		{"plain float", "2500.75", 2500.75, false},

		// Currency placement variants
		{"symbol prefix", "CFA 15 000", 15000, false},
		{"trailing currency word", "75 000 FCFA", 75000, false},

		// Unparseable input stays nil
		{"on request", "Prix sur demande", 0, true},
		{"on request short", "Sur demande", 0, true},
		{"empty", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"no digits", "gratuit", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPrice(tt.input)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("CleanPrice(%q) = %v, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("CleanPrice(%q) = nil, want %v", tt.input, tt.expected)
			}
			if *got != tt.expected {
				t.Errorf("CleanPrice(%q) = %v, want %v", tt.input, *got, tt.expected)
			}
		})
	}
}

func TestCleanPriceIdempotent(t *testing.T) {
	first := CleanPrice("2 500 FCFA")
	if first == nil {
		t.Fatal("first pass returned nil")
	}
	second := CleanPrice("2500")
	if second == nil || *second != *first {
		t.Fatalf("cleaning an already-clean value changed it: %v vs %v", first, second)
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Dakar   Plateau ", "Dakar Plateau"},
		{"2 500 CFA", "2 500 CFA"},
		{"one\ttwo\nthree", "one two three"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSpace(tt.input); got != tt.expected {
			t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCleanPreservesRawPrice(t *testing.T) {
	raw := []models.RawListing{
		{Type: "Habits", PriceRaw: " 2 500 CFA ", Location: " Dakar "},
		{Type: "chaussures", PriceRaw: "Prix sur demande", Location: "Thies"},
	}

	cleaned := Clean(raw)
	if len(cleaned) != 2 {
		t.Fatalf("Clean returned %d listings, want 2", len(cleaned))
	}

	if cleaned[0].PriceRaw != "2 500 CFA" {
		t.Errorf("PriceRaw = %q, want %q", cleaned[0].PriceRaw, "2 500 CFA")
	}
	if cleaned[0].Price == nil || *cleaned[0].Price != 2500 {
		t.Errorf("Price = %v, want 2500", cleaned[0].Price)
	}
	if cleaned[0].Type != "habits" {
		t.Errorf("Type = %q, want lowercased %q", cleaned[0].Type, "habits")
	}

	if cleaned[1].Price != nil {
		t.Errorf("unparseable price should stay nil, got %v", *cleaned[1].Price)
	}
	if cleaned[1].PriceRaw != "Prix sur demande" {
		t.Errorf("PriceRaw changed: %q", cleaned[1].PriceRaw)
	}
}

func TestDedupe(t *testing.T) {
	price := 2500.0
	listings := []models.Listing{
		{Type: "habits", PriceRaw: "2 500 CFA", Price: &price, Location: "Dakar", ImageURL: "a.jpg"},
		{Type: "habits", PriceRaw: "2 500 CFA", Price: &price, Location: "Dakar", ImageURL: "a.jpg"},
		{Type: "habits", PriceRaw: "2 500 CFA", Price: &price, Location: "Thies", ImageURL: "a.jpg"},
	}

	unique := Dedupe(listings)
	if len(unique) != 2 {
		t.Fatalf("Dedupe returned %d listings, want 2", len(unique))
	}
	if unique[0].Location != "Dakar" || unique[1].Location != "Thies" {
		t.Errorf("Dedupe changed order: %+v", unique)
	}
}
