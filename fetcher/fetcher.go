package fetcher

import (
	"fmt"
	"net/url"
	"strconv"

	"coinafrique-scraper/models"
)

// Fetcher retrieves the HTML of the first n pages of a category. Each
// page is fetched independently; a failed page is recorded in its
// PageResult and never aborts the remaining pages. The returned error
// is reserved for inputs that make fetching impossible (bad base URL).
type Fetcher interface {
	FetchPages(baseURL string, pages int) ([]models.PageResult, error)
}

// ProgressFunc is called after each page attempt, successful or not.
type ProgressFunc func(done, total int)

// BuildPageURL returns the URL of the given result page. Page 1 is the
// base URL itself; later pages carry a "page" query parameter.
func BuildPageURL(baseURL string, page int) (string, error) {
	if page <= 1 {
		return baseURL, nil
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
