package fetcher

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildPageURL(t *testing.T) {
	base := "https://sn.coinafrique.com/categorie/vetements-homme"

	tests := []struct {
		name     string
		page     int
		expected string
	}{
		{"page 1 is the base URL", 1, base},
		{"page 2 gets a page parameter", 2, base + "?page=2"},
		{"page 7 gets a page parameter", 7, base + "?page=7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildPageURL(base, tt.page)
			if err != nil {
				t.Fatalf("BuildPageURL returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("BuildPageURL(page=%d) = %q, want %q", tt.page, got, tt.expected)
			}
		})
	}
}

func TestBuildPageURLKeepsExistingQuery(t *testing.T) {
	got, err := BuildPageURL("https://example.com/cat?sort=new", 3)
	if err != nil {
		t.Fatalf("BuildPageURL returned error: %v", err)
	}
	if !strings.Contains(got, "sort=new") || !strings.Contains(got, "page=3") {
		t.Errorf("BuildPageURL lost query parameters: %q", got)
	}
}

func TestCollyFetcherAttemptCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer srv.Close()

	for _, pages := range []int{0, 1, 3} {
		f := NewCollyFetcher("test-agent", 0)
		results, err := f.FetchPages(srv.URL+"/categorie/test", pages)
		if err != nil {
			t.Fatalf("FetchPages(%d) returned error: %v", pages, err)
		}
		if len(results) != pages {
			t.Errorf("FetchPages(%d) made %d attempts, want %d", pages, len(results), pages)
		}
		for _, pr := range results {
			if pr.Err != nil {
				t.Errorf("page %d unexpectedly failed: %v", pr.Page, pr.Err)
			}
			if pr.HTML == "" {
				t.Errorf("page %d has no HTML", pr.Page)
			}
		}
	}
}

func TestCollyFetcherMatchesResultsAcrossRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/") {
			target := r.URL.Path + "/"
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer srv.Close()

	f := NewCollyFetcher("test-agent", 0)
	results, err := f.FetchPages(srv.URL+"/categorie/test", 2)
	if err != nil {
		t.Fatalf("FetchPages returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, pr := range results {
		if pr.Err != nil {
			t.Errorf("page %d failed: %v", pr.Page, pr.Err)
		}
		if pr.HTML == "" {
			t.Errorf("page %d lost its body behind the redirect", pr.Page)
		}
	}
}

func TestCollyFetcherFailedPageDoesNotAbortBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `<html><body><div class="card ad__card">listing</div></body></html>`)
	}))
	defer srv.Close()

	f := NewCollyFetcher("test-agent", 0)

	var progressed int
	f.OnProgress(func(done, total int) { progressed++ })

	results, err := f.FetchPages(srv.URL+"/categorie/test", 3)
	if err != nil {
		t.Fatalf("FetchPages returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].Err != nil {
		t.Errorf("page 1 should succeed, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("page 2 should fail with a 500")
	} else if !strings.Contains(results[1].Err.Error(), "500") {
		t.Errorf("page 2 error should mention the status, got %v", results[1].Err)
	}
	if results[2].Err != nil {
		t.Errorf("page 3 should succeed after the failure, got %v", results[2].Err)
	}

	if progressed != 3 {
		t.Errorf("progress callback ran %d times, want 3", progressed)
	}
}
