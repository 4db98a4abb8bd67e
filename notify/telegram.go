package notify

import (
	"fmt"
	"log"

	"coinafrique-scraper/config"
	"coinafrique-scraper/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends a Telegram message when a scrape batch completes.
// A nil Notifier is valid and does nothing, so callers can wire it
// unconditionally.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// New creates a Notifier from the optional Telegram settings. It
// returns (nil, nil) when no bot token is configured.
func New(cfg config.Telegram) (*Notifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	log.Printf("Telegram notifications enabled for @%s\n", bot.Self.UserName)

	return &Notifier{bot: bot, chatID: cfg.ChatID}, nil
}

// ScrapeFinished reports the outcome of a scrape run. Delivery
// failures are logged and never fail the pipeline.
func (n *Notifier) ScrapeFinished(batch *models.ScrapeBatch) {
	if n == nil {
		return
	}

	text := fmt.Sprintf("Scrape finished: %d listings", len(batch.Listings))
	if failed := len(batch.PageErrors); failed > 0 {
		text += fmt.Sprintf(", %d page(s) failed", failed)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("Failed to send Telegram notification: %v\n", err)
	}
}
