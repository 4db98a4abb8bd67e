package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"coinafrique-scraper/cleaner"
	"coinafrique-scraper/config"
	"coinafrique-scraper/fetcher"
	"coinafrique-scraper/insights"
	"coinafrique-scraper/models"
	"coinafrique-scraper/notify"
	"coinafrique-scraper/parser"
	"coinafrique-scraper/report"
	"coinafrique-scraper/storage"
	"coinafrique-scraper/web"

	"github.com/cheggaaa/pb/v3"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	categories := flag.String("categories", "", "Comma-separated category keys to scrape (default: all configured)")
	pages := flag.Int("pages", 2, "Number of pages to scrape per category")
	out := flag.String("out", "output/coinafrique_clean.csv", "Path of the cleaned CSV export")
	csvPath := flag.String("csv", "", "Import a Web Scraper CSV export instead of scraping")
	serve := flag.Bool("serve", false, "Start the web dashboard")
	listen := flag.String("listen", "", "Dashboard listen address (overrides config)")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *listen != "" {
		cfg.ListenAddr = *listen
	}

	switch {
	case *serve:
		runServe(cfg, *csvPath)
	case *csvPath != "":
		runImport(cfg, *csvPath, *out)
	default:
		runScrape(cfg, *categories, *pages, *out)
	}
}

// loadConfig reads the YAML config, falling back to built-in defaults
// when the file is absent.
func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Config file %s not found, using defaults\n", path)
			return config.Default()
		}
		log.Fatalf("Failed to load config: %v\n", err)
	}
	return cfg
}

// runScrape fetches the selected categories, cleans the rows, writes
// the CSV export and prints the terminal report.
func runScrape(cfg *config.Config, categoryArg string, pages int, out string) {
	cats := selectCategories(cfg, categoryArg)
	if len(cats) == 0 {
		log.Fatal("No matching categories to scrape")
	}
	if pages < 0 {
		pages = 0
	}

	batch, err := scrapeBatch(cfg, cats, pages)
	if err != nil {
		log.Fatalf("Scraping failed: %v\n", err)
	}

	if len(batch.Listings) == 0 {
		fmt.Println("No listings found. Try more pages or other categories.")
	} else if err := storage.SaveListingsCSV(out, batch.Listings); err != nil {
		log.Printf("Failed to write CSV: %v\n", err)
	} else {
		log.Printf("Cleaned data written to %s (%d rows)\n", out, len(batch.Listings))
	}

	report.Print(insights.Generate(batch.Listings), batch)

	notifier, err := notify.New(cfg.Telegram)
	if err != nil {
		log.Printf("Telegram notifications disabled: %v\n", err)
	}
	notifier.ScrapeFinished(batch)
}

// runImport reads a Web Scraper export, cleans it and reports on it.
func runImport(cfg *config.Config, csvPath, out string) {
	batch, err := importBatch(csvPath)
	if err != nil {
		log.Fatalf("Import failed: %v\n", err)
	}

	if out != "" && len(batch.Listings) > 0 {
		if err := storage.SaveListingsCSV(out, batch.Listings); err != nil {
			log.Printf("Failed to write CSV: %v\n", err)
		} else {
			log.Printf("Cleaned data written to %s (%d rows)\n", out, len(batch.Listings))
		}
	}

	report.Print(insights.Generate(batch.Listings), batch)
}

// runServe starts the dashboard, seeded from an explicit CSV, the
// bundled sample, or empty when neither is available.
func runServe(cfg *config.Config, csvPath string) {
	seed := csvPath
	if seed == "" {
		seed = cfg.SampleCSVPath
	}

	var batch models.ScrapeBatch
	if seed != "" {
		loaded, err := importBatch(seed)
		if err != nil {
			log.Printf("Starting with an empty batch: %v\n", err)
		} else {
			batch = *loaded
		}
	}

	srv := web.NewServer(cfg, batch)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Dashboard failed: %v\n", err)
	}
}

// selectCategories resolves the -categories flag against the config.
func selectCategories(cfg *config.Config, arg string) []config.Category {
	if strings.TrimSpace(arg) == "" {
		return cfg.Categories
	}

	var cats []config.Category
	for _, key := range strings.Split(arg, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if cat := cfg.CategoryByKey(key); cat != nil {
			cats = append(cats, *cat)
		} else {
			log.Printf("Unknown category %q, skipping\n", key)
		}
	}
	return cats
}

// newFetcher builds the fetcher selected in the config.
func newFetcher(cfg *config.Config) (fetcher.Fetcher, func(), error) {
	switch cfg.Fetcher {
	case "", "colly":
		return fetcher.NewCollyFetcher(cfg.UserAgent, cfg.DelayMs), func() {}, nil
	case "rod":
		f, err := fetcher.NewRodFetcher()
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown fetcher %q (want colly or rod)", cfg.Fetcher)
	}
}

// scrapeBatch runs the fetch → parse → clean pipeline over categories.
func scrapeBatch(cfg *config.Config, cats []config.Category, pages int) (*models.ScrapeBatch, error) {
	f, closeFetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	defer closeFetcher()

	bar := pb.StartNew(len(cats) * pages)
	defer bar.Finish()
	if p, ok := f.(interface{ OnProgress(fetcher.ProgressFunc) }); ok {
		p.OnProgress(func(done, total int) { bar.Increment() })
	}

	p := parser.New(cfg.Selectors)
	batch := &models.ScrapeBatch{ScrapedAt: time.Now()}
	var raw []models.RawListing

	for _, cat := range cats {
		log.Printf("Scraping %s (%d pages)\n", cat.Label, pages)

		results, err := f.FetchPages(cat.URL, pages)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", cat.Key, err)
		}

		for _, pr := range results {
			if pr.Err != nil {
				batch.PageErrors = append(batch.PageErrors, models.PageError{
					Page:    pr.Page,
					URL:     pr.URL,
					Message: pr.Err.Error(),
				})
				continue
			}
			listings, err := p.ParsePage(pr.HTML, cat, pr.Page)
			if err != nil {
				batch.PageErrors = append(batch.PageErrors, models.PageError{
					Page:    pr.Page,
					URL:     pr.URL,
					Message: err.Error(),
				})
				continue
			}
			raw = append(raw, listings...)
		}
	}

	batch.Listings = cleaner.Dedupe(cleaner.Clean(raw))
	return batch, nil
}

// importBatch reads and cleans a Web Scraper CSV export from disk.
func importBatch(path string) (*models.ScrapeBatch, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer file.Close()

	raw, err := storage.ReadWebScraperCSV(file)
	if err != nil {
		return nil, err
	}

	return &models.ScrapeBatch{
		Listings:  cleaner.Dedupe(cleaner.Clean(raw)),
		ScrapedAt: time.Now(),
	}, nil
}
