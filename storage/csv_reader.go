package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"coinafrique-scraper/models"
)

// RequiredColumns are the columns a Web Scraper export must carry.
var RequiredColumns = []string{"type", "prix", "adresse", "image_lien"}

// Optional columns recognized when present.
const (
	colCategory = "categorie"
	colTitle    = "titre"
	colURL      = "lien"
)

// FormatError reports an uploaded CSV that does not match the Web
// Scraper export schema. It is blocking: no rows are produced.
type FormatError struct {
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("CSV is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ReadWebScraperCSV reads a Web Scraper browser-extension export into
// raw listings. A missing required column yields a *FormatError and no
// rows; short or malformed data rows are skipped individually.
func ReadWebScraperCSV(r io.Reader) ([]models.RawListing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &FormatError{Missing: RequiredColumns}
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Missing: missing}
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var listings []models.RawListing
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// One malformed row does not poison the upload.
			continue
		}
		listings = append(listings, models.RawListing{
			Category: field(row, colCategory),
			Type:     field(row, "type"),
			Title:    field(row, colTitle),
			PriceRaw: field(row, "prix"),
			Location: field(row, "adresse"),
			ImageURL: field(row, "image_lien"),
			URL:      field(row, colURL),
		})
	}

	return listings, nil
}
