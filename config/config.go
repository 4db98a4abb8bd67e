package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category describes one scrapeable category of the site.
type Category struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Type  string `yaml:"type"`
}

// Selectors holds the CSS selectors used to extract listing cards.
// They track the live structure of the site and can be overridden
// from the config file when the markup changes.
type Selectors struct {
	Card     string `yaml:"card"`
	Price    string `yaml:"price"`
	Location string `yaml:"location"`
	Image    string `yaml:"image"`
	Title    string `yaml:"title"`
	Link     string `yaml:"link"`
}

// Filters holds the default dashboard filter criteria.
type Filters struct {
	Types          []string `yaml:"types"`
	LocationQuery  string   `yaml:"location_query"`
	MinPrice       float64  `yaml:"min_price"`
	MaxPrice       float64  `yaml:"max_price"`
	IncludeNoPrice bool     `yaml:"include_no_price"`
}

// Telegram holds optional scrape-completion notification settings.
type Telegram struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

// Config is the application configuration.
type Config struct {
	Categories []Category `yaml:"categories"`
	Selectors  Selectors  `yaml:"selectors"`
	Filters    Filters    `yaml:"filters"`
	Telegram   Telegram   `yaml:"telegram"`

	// Fetcher is "colly" (plain HTTP) or "rod" (headless browser,
	// for JavaScript-rendered pages).
	Fetcher   string `yaml:"fetcher"`
	UserAgent string `yaml:"user_agent"`
	DelayMs   int    `yaml:"delay_ms"`

	ListenAddr    string `yaml:"listen_addr"`
	SampleCSVPath string `yaml:"sample_csv_path"`
	FormURL       string `yaml:"form_url"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Categories: []Category{
			{
				Key:   "vetements-homme",
				Label: "Vetements homme",
				URL:   "https://sn.coinafrique.com/categorie/vetements-homme",
				Type:  "habits",
			},
			{
				Key:   "chaussures-homme",
				Label: "Chaussures homme",
				URL:   "https://sn.coinafrique.com/categorie/chaussures-homme",
				Type:  "chaussures",
			},
			{
				Key:   "vetements-enfants",
				Label: "Vetements enfants",
				URL:   "https://sn.coinafrique.com/categorie/vetements-enfants",
				Type:  "habits",
			},
			{
				Key:   "chaussures-enfants",
				Label: "Chaussures enfants",
				URL:   "https://sn.coinafrique.com/categorie/chaussures-enfants",
				Type:  "chaussures",
			},
		},
		Selectors: Selectors{
			Card:     "div.card.ad__card",
			Price:    "p.ad__card-price a",
			Location: "p.ad__card-location span",
			Image:    "img.ad__card-img",
			Title:    "p.ad__card-description a",
			Link:     "p.ad__card-description a",
		},
		Filters: Filters{
			MinPrice:       0,
			MaxPrice:       1000000000,
			IncludeNoPrice: true,
		},
		Fetcher: "colly",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		DelayMs:       600,
		ListenAddr:    ":8787",
		SampleCSVPath: "data/web_scraper_raw.csv",
		FormURL:       "https://ee.kobotoolbox.org/x/UUtyFL64",
	}
}

// CategoryByKey returns the category with the given key, or nil.
func (c *Config) CategoryByKey(key string) *Category {
	for i := range c.Categories {
		if c.Categories[i].Key == key {
			return &c.Categories[i]
		}
	}
	return nil
}
