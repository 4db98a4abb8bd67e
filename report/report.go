package report

import (
	"fmt"
	"sort"

	"coinafrique-scraper/models"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// fcfa formats an amount the way the site displays prices.
func fcfa(v float64) string {
	return humanize.Commaf(v) + " FCFA"
}

// Print renders the insight report to the terminal.
func Print(r *models.InsightReport, batch *models.ScrapeBatch) {
	if r.TotalListings == 0 {
		pterm.Warning.Println("No data — the batch is empty.")
		printFetchFailures(batch)
		return
	}

	pterm.DefaultSection.Println("Overview")
	overview := pterm.TableData{
		{"Total listings", humanize.Comma(int64(r.TotalListings))},
		{"With price", humanize.Comma(int64(r.WithPrice))},
		{"Without price", humanize.Comma(int64(r.WithoutPrice))},
	}
	if r.WithPrice > 0 {
		overview = append(overview,
			[]string{"Min price", fcfa(r.MinPrice)},
			[]string{"Median price", fcfa(r.MedianPrice)},
			[]string{"Mean price", fcfa(r.MeanPrice)},
			[]string{"Max price", fcfa(r.MaxPrice)},
		)
	}
	if err := pterm.DefaultTable.WithData(overview).Render(); err != nil {
		fmt.Println(overview)
	}

	if len(r.ListingsByType) > 0 {
		pterm.DefaultSection.Println("Listings per type")
		renderBars(r.ListingsByType)
	}

	if len(r.ListingsByCat) > 0 {
		pterm.DefaultSection.Println("Listings per category")
		renderBars(r.ListingsByCat)
	}

	if len(r.MeanPriceByType) > 0 {
		pterm.DefaultSection.Println("Mean price per type")
		renderMeanPrices(r.MeanPriceByType)
	}

	if len(r.TopLocations) > 0 {
		pterm.DefaultSection.Println("Top locations")
		data := pterm.TableData{{"Location", "Listings"}}
		for _, lc := range r.TopLocations {
			data = append(data, []string{lc.Location, humanize.Comma(int64(lc.Count))})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			fmt.Println(data)
		}
	}

	printFetchFailures(batch)
}

// renderBars draws a horizontal bar chart of label counts.
func renderBars(counts map[string]int) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	bars := make(pterm.Bars, 0, len(labels))
	for _, label := range labels {
		bars = append(bars, pterm.Bar{Label: label, Value: counts[label]})
	}

	if err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render(); err != nil {
		for _, b := range bars {
			fmt.Printf("  %s: %d\n", b.Label, b.Value)
		}
	}
}

// renderMeanPrices draws mean prices per type, most expensive first.
func renderMeanPrices(means map[string]float64) {
	labels := make([]string, 0, len(means))
	for label := range means {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if means[labels[i]] != means[labels[j]] {
			return means[labels[i]] > means[labels[j]]
		}
		return labels[i] < labels[j]
	})

	bars := make(pterm.Bars, 0, len(labels))
	for _, label := range labels {
		bars = append(bars, pterm.Bar{Label: label, Value: int(means[label])})
	}

	if err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render(); err != nil {
		for _, label := range labels {
			fmt.Printf("  %s: %s\n", label, fcfa(means[label]))
		}
	}
}

// printFetchFailures lists pages that could not be fetched.
func printFetchFailures(batch *models.ScrapeBatch) {
	if batch == nil || len(batch.PageErrors) == 0 {
		return
	}
	pterm.DefaultSection.Println("Fetch failures")
	for _, pe := range batch.PageErrors {
		pterm.Error.Printfln("page %d (%s): %s", pe.Page, pe.URL, pe.Message)
	}
}
