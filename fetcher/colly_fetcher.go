package fetcher

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"coinafrique-scraper/models"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface with plain HTTP GETs
// through colly.
type CollyFetcher struct {
	userAgent string
	delay     time.Duration
	progress  ProgressFunc
}

// NewCollyFetcher creates a CollyFetcher with the given user agent and
// inter-request delay in milliseconds.
func NewCollyFetcher(userAgent string, delayMs int) *CollyFetcher {
	return &CollyFetcher{
		userAgent: userAgent,
		delay:     time.Duration(delayMs) * time.Millisecond,
	}
}

// OnProgress registers a callback invoked after every page attempt.
func (f *CollyFetcher) OnProgress(fn ProgressFunc) {
	f.progress = fn
}

// FetchPages fetches pages 1..pages of the category at baseURL, one GET
// per page. HTTP and connection failures are recorded per page.
func (f *CollyFetcher) FetchPages(baseURL string, pages int) ([]models.PageResult, error) {
	if pages < 0 {
		pages = 0
	}
	results := make([]models.PageResult, 0, pages)

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       f.delay,
	})

	// Results are matched back by page number through the request
	// context. Matching on the URL string breaks when colly
	// re-serializes the URL (e.g. percent-encoding case).
	byPage := make(map[int]*models.PageResult)

	resultFor := func(r *colly.Response) *models.PageResult {
		page, err := strconv.Atoi(r.Ctx.Get("page"))
		if err != nil {
			return nil
		}
		return byPage[page]
	}

	c.OnResponse(func(r *colly.Response) {
		if pr := resultFor(r); pr != nil {
			pr.HTML = string(r.Body)
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		pr := resultFor(r)
		if pr == nil {
			return
		}
		if r.StatusCode > 0 {
			pr.Err = fmt.Errorf("fetch failed with status %d: %w", r.StatusCode, err)
		} else {
			pr.Err = fmt.Errorf("fetch failed: %w", err)
		}
		log.Printf("Error fetching %s: %v\n", r.Request.URL, err)
	})

	for page := 1; page <= pages; page++ {
		pageURL, err := BuildPageURL(baseURL, page)
		if err != nil {
			return nil, err
		}

		results = append(results, models.PageResult{Page: page, URL: pageURL})
		pr := &results[len(results)-1]
		byPage[page] = pr

		ctx := colly.NewContext()
		ctx.Put("page", strconv.Itoa(page))
		if err := c.Request("GET", pageURL, nil, ctx, nil); err != nil && pr.Err == nil {
			pr.Err = fmt.Errorf("fetch failed: %w", err)
		}
		c.Wait()

		if pr.Err == nil {
			log.Printf("Fetched page %d/%d: %s\n", page, pages, pageURL)
		}
		if f.progress != nil {
			f.progress(page, pages)
		}
	}

	return results, nil
}
