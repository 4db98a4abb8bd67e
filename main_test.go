package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coinafrique-scraper/config"
	"coinafrique-scraper/insights"
)

const listingCard = `
<div class="card ad__card">
  <img class="ad__card-img" src="/images/%d.jpg">
  <p class="ad__card-description"><a href="/annonce/%d">Article %d</a></p>
  <p class="ad__card-price"><a href="/annonce/%d">%s</a></p>
  <p class="ad__card-location"><span>Dakar</span></p>
</div>`

func TestScrapeBatchPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "<html><body>")
		fmt.Fprintf(w, listingCard, 1, 1, 1, 1, "2 500 CFA")
		fmt.Fprintf(w, listingCard, 2, 2, 2, 2, "6 000 CFA")
		fmt.Fprintf(w, listingCard, 3, 3, 3, 3, "Prix sur demande")
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.DelayMs = 0
	cats := []config.Category{{
		Key:   "vetements-homme",
		Label: "Vetements homme",
		URL:   srv.URL + "/categorie/vetements-homme",
		Type:  "habits",
	}}

	batch, err := scrapeBatch(cfg, cats, 2)
	if err != nil {
		t.Fatalf("scrapeBatch returned error: %v", err)
	}

	if len(batch.Listings) != 3 {
		t.Fatalf("batch has %d listings, want 3", len(batch.Listings))
	}
	if len(batch.PageErrors) != 1 {
		t.Fatalf("batch has %d page errors, want 1", len(batch.PageErrors))
	}
	if batch.PageErrors[0].Page != 2 {
		t.Errorf("failed page = %d, want 2", batch.PageErrors[0].Page)
	}

	report := insights.Generate(batch.Listings)
	if report.TotalListings != 3 {
		t.Errorf("TotalListings = %d, want 3", report.TotalListings)
	}
	if report.WithPrice != 2 || report.WithoutPrice != 1 {
		t.Errorf("price counts = %d/%d, want 2/1", report.WithPrice, report.WithoutPrice)
	}
	if report.MinPrice != 2500 || report.MaxPrice != 6000 {
		t.Errorf("min/max = %v/%v, want 2500/6000", report.MinPrice, report.MaxPrice)
	}
}

func TestSelectCategories(t *testing.T) {
	cfg := config.Default()

	all := selectCategories(cfg, "")
	if len(all) != len(cfg.Categories) {
		t.Errorf("empty arg should select all categories, got %d", len(all))
	}

	some := selectCategories(cfg, "vetements-homme, chaussures-homme")
	if len(some) != 2 {
		t.Fatalf("got %d categories, want 2", len(some))
	}
	if some[0].Key != "vetements-homme" {
		t.Errorf("wrong category order: %+v", some)
	}

	none := selectCategories(cfg, "does-not-exist")
	if len(none) != 0 {
		t.Errorf("unknown keys should select nothing, got %d", len(none))
	}
}
