package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/restockd/stockwatch/internal/models"
	"gopkg.in/telebot.v4"
)

// Telegram is an optional second alert channel. The bot is send-only; no
// poller is started.
type Telegram struct {
	bot    *telebot.Bot
	log    *slog.Logger
	chatID int64
}

// NewTelegram creates the telegram channel. It performs one getMe call to
// validate the token.
func NewTelegram(log *slog.Logger, token string, chatID int64) (*Telegram, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	return &Telegram{bot: bot, log: log, chatID: chatID}, nil
}

// Notify sends the alert text to the configured chat.
func (t *Telegram) Notify(ctx context.Context, product models.Product) error {
	const opn = "notifier.Telegram.Notify"

	text := subjectLine(product.Name) + "\n\n" + bodyText(product)
	if _, err := t.bot.Send(telebot.ChatID(t.chatID), text); err != nil {
		return fmt.Errorf("%s: failed to send message: %w", opn, err)
	}

	t.log.InfoContext(ctx, "Telegram notification sent", "chat_id", t.chatID)

	return nil
}
