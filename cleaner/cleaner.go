package cleaner

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"coinafrique-scraper/models"
)

var (
	spaceRegex = regexp.MustCompile(`\s+`)
	// First run of digits possibly interleaved with grouping/decimal
	// separators, e.g. "2 500", "1,200.50", "3.000".
	numberRegex = regexp.MustCompile(`\d[\d\x{00a0} .,]*`)
	// Trailing decimal part: separator followed by one or two digits.
	decimalRegex = regexp.MustCompile(`[.,]\d{1,2}$`)
)

// NormalizeSpace collapses whitespace runs (including non-breaking
// spaces) into single spaces and trims the result.
func NormalizeSpace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}

// CleanPrice coerces a locale-formatted price text to a numeric value.
// Currency symbols and thousands separators (spaces, dots or commas)
// are stripped; a trailing ",dd" or ".dd" is treated as the decimal
// part. It returns nil for empty, on-request ("prix sur demande") or
// otherwise unparseable input.
func CleanPrice(raw string) *float64 {
	text := NormalizeSpace(raw)
	if text == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(text), "sur demande") {
		return nil
	}

	token := numberRegex.FindString(text)
	if token == "" {
		return nil
	}

	// Grouping by spaces never marks a decimal part.
	token = strings.NewReplacer("\u00a0", "", " ", "").Replace(token)
	token = strings.Trim(token, ".,")

	decimal := ""
	if m := decimalRegex.FindString(token); m != "" {
		decimal = m[1:]
		token = token[:len(token)-len(m)]
	}
	token = strings.NewReplacer(".", "", ",", "").Replace(token)
	if decimal != "" {
		token = token + "." + decimal
	}

	val, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil
	}
	return &val
}

// Clean converts raw listings into normalized ones. Field text is
// whitespace-normalized, the item type is lowercased and the price is
// coerced with CleanPrice; the raw price text is always kept.
func Clean(raw []models.RawListing) []models.Listing {
	cleaned := make([]models.Listing, 0, len(raw))
	for _, r := range raw {
		priceRaw := NormalizeSpace(r.PriceRaw)
		cleaned = append(cleaned, models.Listing{
			Category: NormalizeSpace(r.Category),
			Type:     strings.ToLower(NormalizeSpace(r.Type)),
			Title:    NormalizeSpace(r.Title),
			PriceRaw: priceRaw,
			Price:    CleanPrice(priceRaw),
			Location: NormalizeSpace(r.Location),
			ImageURL: NormalizeSpace(r.ImageURL),
			URL:      NormalizeSpace(r.URL),
			Page:     r.Page,
		})
	}
	log.Printf("Cleaned %d listings\n", len(cleaned))
	return cleaned
}

// Dedupe removes exact duplicates, keeping first occurrences in order.
func Dedupe(listings []models.Listing) []models.Listing {
	seen := make(map[string]bool, len(listings))
	unique := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		key := strings.Join([]string{
			l.Category, l.Type, l.PriceRaw, l.Location, l.ImageURL,
		}, "|")
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, l)
	}
	if removed := len(listings) - len(unique); removed > 0 {
		log.Printf("Removed %d duplicate listings\n", removed)
	}
	return unique
}
