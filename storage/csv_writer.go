package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"coinafrique-scraper/models"
)

// listingHeader is the column order of the cleaned-table export.
var listingHeader = []string{
	"categorie", "type", "titre", "prix_brut", "prix",
	"adresse", "image_lien", "lien", "page",
}

// WriteListingsCSV writes the cleaned table to w. An unparseable price
// is exported as an empty cell with the raw text kept in prix_brut.
func WriteListingsCSV(w io.Writer, listings []models.Listing) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(listingHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, l := range listings {
		price := ""
		if l.Price != nil {
			price = strconv.FormatFloat(*l.Price, 'f', -1, 64)
		}
		row := []string{
			l.Category,
			l.Type,
			l.Title,
			l.PriceRaw,
			price,
			l.Location,
			l.ImageURL,
			l.URL,
			strconv.Itoa(l.Page),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveListingsCSV writes the cleaned table to a file, creating parent
// directories as needed.
func SaveListingsCSV(path string, listings []models.Listing) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	return WriteListingsCSV(file, listings)
}
