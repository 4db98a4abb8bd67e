package fetcher

import (
	"fmt"
	"log"
	"time"

	"coinafrique-scraper/models"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodFetcher implements the Fetcher interface with a headless browser.
// It is the fallback for pages that render their listing cards with
// JavaScript and come back empty over plain HTTP.
type RodFetcher struct {
	browser  *rod.Browser
	progress ProgressFunc
}

// NewRodFetcher launches a headless browser and connects to it.
func NewRodFetcher() (*RodFetcher, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("mute-audio")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &RodFetcher{browser: browser}, nil
}

// OnProgress registers a callback invoked after every page attempt.
func (f *RodFetcher) OnProgress(fn ProgressFunc) {
	f.progress = fn
}

// FetchPages fetches pages 1..pages, rendering each in the browser.
func (f *RodFetcher) FetchPages(baseURL string, pages int) ([]models.PageResult, error) {
	if pages < 0 {
		pages = 0
	}
	results := make([]models.PageResult, 0, pages)

	for page := 1; page <= pages; page++ {
		pageURL, err := BuildPageURL(baseURL, page)
		if err != nil {
			return nil, err
		}

		html, err := f.fetchOne(pageURL)
		pr := models.PageResult{Page: page, URL: pageURL, HTML: html, Err: err}
		if err != nil {
			log.Printf("Error rendering %s: %v\n", pageURL, err)
			pr.HTML = ""
		} else {
			log.Printf("Rendered page %d/%d: %s\n", page, pages, pageURL)
		}
		results = append(results, pr)

		if f.progress != nil {
			f.progress(page, pages)
		}
	}

	return results, nil
}

// fetchOne renders a single page and returns its HTML.
func (f *RodFetcher) fetchOne(pageURL string) (html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("browser panic: %v", r)
		}
	}()

	page, err := f.browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("failed to open page: %w", err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("failed to load page: %w", err)
	}
	// Let client-side rendering settle before grabbing the DOM.
	if err := page.Timeout(10 * time.Second).WaitStable(500 * time.Millisecond); err != nil {
		log.Printf("Warning: page did not stabilize, continuing: %v\n", err)
	}

	return page.HTML()
}

// Close shuts the headless browser down.
func (f *RodFetcher) Close() error {
	if f.browser != nil {
		return f.browser.Close()
	}
	return nil
}
