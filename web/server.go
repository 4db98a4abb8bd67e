package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"coinafrique-scraper/cleaner"
	"coinafrique-scraper/config"
	"coinafrique-scraper/filter"
	"coinafrique-scraper/insights"
	"coinafrique-scraper/models"
	"coinafrique-scraper/storage"
)

// maxUploadBytes bounds Web Scraper CSV uploads.
const maxUploadBytes = 16 << 20

// Server serves the dashboard for the current in-memory batch. The
// batch is replaced wholesale by a scrape or an upload; it is the only
// state the server holds.
type Server struct {
	cfg *config.Config

	mu    sync.RWMutex
	batch models.ScrapeBatch

	page *template.Template
}

// NewServer creates a dashboard server seeded with the given batch.
func NewServer(cfg *config.Config, batch models.ScrapeBatch) *Server {
	return &Server{
		cfg:   cfg,
		batch: batch,
		page:  template.Must(template.New("dashboard").Parse(dashboardHTML)),
	}
}

// SetBatch replaces the current batch.
func (s *Server) SetBatch(batch models.ScrapeBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = batch
}

// snapshot returns the current batch under the read lock.
func (s *Server) snapshot() models.ScrapeBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/listings", s.handleAPIListings)
	mux.HandleFunc("/api/insights", s.handleAPIInsights)
	mux.HandleFunc("/export.csv", s.handleExport)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe runs the dashboard on the configured address.
func (s *Server) ListenAndServe() error {
	log.Printf("Dashboard listening on http://localhost%s\n", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// pageData is what the dashboard template receives. Listings and the
// report are embedded as JSON and filtered client-side.
type pageData struct {
	ListingsJSON template.JS
	ErrorsJSON   template.JS
	FormURL      string
	ScrapedAt    string
	Notice       string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.renderIndex(w, r.URL.Query().Get("notice"))
}

func (s *Server) renderIndex(w http.ResponseWriter, notice string) {
	batch := s.snapshot()

	listingsJSON, err := json.Marshal(batch.Listings)
	if err != nil {
		http.Error(w, "failed to encode listings", http.StatusInternalServerError)
		return
	}
	errorsJSON, _ := json.Marshal(batch.PageErrors)

	scrapedAt := "never"
	if !batch.ScrapedAt.IsZero() {
		scrapedAt = batch.ScrapedAt.Format("January 2, 2006 at 15:04")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		ListingsJSON: template.JS(listingsJSON),
		ErrorsJSON:   template.JS(errorsJSON),
		FormURL:      s.cfg.FormURL,
		ScrapedAt:    scrapedAt,
		Notice:       notice,
	}
	if err := s.page.Execute(w, data); err != nil {
		log.Printf("Failed to render dashboard: %v\n", err)
	}
}

// criteriaFromQuery builds filter criteria from request parameters,
// starting from the configured defaults.
func (s *Server) criteriaFromQuery(r *http.Request) config.Filters {
	criteria := s.cfg.Filters
	q := r.URL.Query()

	if types := q.Get("type"); types != "" {
		criteria.Types = strings.Split(types, ",")
	}
	if loc := q.Get("location"); loc != "" {
		criteria.LocationQuery = loc
	}
	if min, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		criteria.MinPrice = min
	}
	if max, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		criteria.MaxPrice = max
	}
	if v := q.Get("include_no_price"); v != "" {
		criteria.IncludeNoPrice = v == "true" || v == "1"
	}
	return criteria
}

func (s *Server) handleAPIListings(w http.ResponseWriter, r *http.Request) {
	batch := s.snapshot()
	batch.Listings = filter.New(s.criteriaFromQuery(r)).Apply(batch.Listings)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(batch); err != nil {
		log.Printf("Failed to encode listings: %v\n", err)
	}
}

func (s *Server) handleAPIInsights(w http.ResponseWriter, r *http.Request) {
	batch := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(insights.Generate(batch.Listings)); err != nil {
		log.Printf("Failed to encode insights: %v\n", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	batch := s.snapshot()
	listings := filter.New(s.criteriaFromQuery(r)).Apply(batch.Listings)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="coinafrique_clean.csv"`)
	if err := storage.WriteListingsCSV(w, listings); err != nil {
		log.Printf("Failed to export CSV: %v\n", err)
	}
}

// handleUpload accepts a Web Scraper CSV export and replaces the
// current batch with its cleaned rows. A schema mismatch is surfaced
// to the user and leaves the current batch untouched.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("csv")
	if err != nil {
		http.Error(w, "upload a CSV file in the \"csv\" field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := storage.ReadWebScraperCSV(file)
	if err != nil {
		var formatErr *storage.FormatError
		if errors.As(err, &formatErr) {
			http.Error(w, formatErr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("failed to read CSV: %v", err), http.StatusBadRequest)
		return
	}

	listings := cleaner.Dedupe(cleaner.Clean(raw))
	s.SetBatch(models.ScrapeBatch{Listings: listings, ScrapedAt: time.Now()})
	log.Printf("Upload replaced the batch with %d listings\n", len(listings))

	http.Redirect(w, r, fmt.Sprintf("/?notice=%d+rows+loaded", len(listings)), http.StatusSeeOther)
}
