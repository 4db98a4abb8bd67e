package parser

import (
	"testing"

	"coinafrique-scraper/config"
)

const samplePage = `
<html><body>
<div class="card ad__card">
  <img class="ad__card-img" src="/images/tshirt.jpg">
  <p class="ad__card-description"><a href="/annonce/tshirt-123">T-shirt coton</a></p>
  <p class="ad__card-price"><a href="/annonce/tshirt-123">2 500 CFA</a></p>
  <p class="ad__card-location"><i></i><span>Dakar</span></p>
</div>
<div class="card ad__card">
  <img class="ad__card-img" src="https://cdn.example.com/veste.jpg">
  <p class="ad__card-description"><a href="https://sn.coinafrique.com/annonce/veste-456">Veste homme</a></p>
  <p class="ad__card-price"><a href="/annonce/veste-456">Prix sur demande</a></p>
  <p class="ad__card-location"><i></i><span>Thies</span></p>
</div>
<div class="card ad__card">
  <!-- card with none of the expected children -->
</div>
<div class="card other__card">
  <p class="ad__card-price"><a>9 999 CFA</a></p>
</div>
</body></html>`

func testCategory() config.Category {
	return config.Category{
		Key:   "vetements-homme",
		Label: "Vetements homme",
		URL:   "https://sn.coinafrique.com/categorie/vetements-homme",
		Type:  "habits",
	}
}

func TestParsePage(t *testing.T) {
	p := New(config.Default().Selectors)

	listings, err := p.ParsePage(samplePage, testCategory(), 1)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}

	// Two real cards; the empty card and the non-matching card are skipped.
	if len(listings) != 2 {
		t.Fatalf("ParsePage returned %d listings, want 2", len(listings))
	}

	first := listings[0]
	if first.PriceRaw != "2 500 CFA" {
		t.Errorf("PriceRaw = %q, want %q", first.PriceRaw, "2 500 CFA")
	}
	if first.Location != "Dakar" {
		t.Errorf("Location = %q, want %q", first.Location, "Dakar")
	}
	if first.ImageURL != "/images/tshirt.jpg" {
		t.Errorf("ImageURL = %q", first.ImageURL)
	}
	if first.Title != "T-shirt coton" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.URL != "https://sn.coinafrique.com/annonce/tshirt-123" {
		t.Errorf("relative URL not resolved: %q", first.URL)
	}
	if first.Category != "vetements-homme" || first.Type != "habits" {
		t.Errorf("category metadata not applied: %+v", first)
	}
	if first.Page != 1 {
		t.Errorf("Page = %d, want 1", first.Page)
	}

	second := listings[1]
	if second.PriceRaw != "Prix sur demande" {
		t.Errorf("PriceRaw = %q, want %q", second.PriceRaw, "Prix sur demande")
	}
	if second.URL != "https://sn.coinafrique.com/annonce/veste-456" {
		t.Errorf("absolute URL rewritten: %q", second.URL)
	}
}

func TestParsePageEmpty(t *testing.T) {
	p := New(config.Default().Selectors)

	listings, err := p.ParsePage("<html><body><p>nothing here</p></body></html>", testCategory(), 1)
	if err != nil {
		t.Fatalf("ParsePage returned error: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("ParsePage returned %d listings, want 0", len(listings))
	}
}

func TestBaseOf(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://sn.coinafrique.com/categorie/vetements-homme", "https://sn.coinafrique.com"},
		{"https://sn.coinafrique.com", "https://sn.coinafrique.com"},
		{"http://example.com/a/b?c=d", "http://example.com"},
	}
	for _, tt := range tests {
		if got := baseOf(tt.input); got != tt.expected {
			t.Errorf("baseOf(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
