package config_test

import (
	"testing"
	"time"

	"github.com/restockd/stockwatch/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad(t *testing.T) {
	t.Run("error - empty sender", func(t *testing.T) {
		t.Setenv("SW_SENDER_EMAIL", "")

		assert.PanicsWithError(t, config.ErrEmptySender.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("error - empty password", func(t *testing.T) {
		t.Setenv("SW_SENDER_EMAIL", "alerts@example.com")
		t.Setenv("SW_SENDER_PASSWORD", "")

		assert.PanicsWithError(t, config.ErrEmptyPassword.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("error - empty recipient", func(t *testing.T) {
		t.Setenv("SW_SENDER_EMAIL", "alerts@example.com")
		t.Setenv("SW_SENDER_PASSWORD", "app-password")
		t.Setenv("SW_RECIPIENT_EMAIL", "")

		assert.PanicsWithError(t, config.ErrEmptyRecipient.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("success", func(t *testing.T) {
		t.Setenv("SW_ENV", "local")
		t.Setenv("SW_SENDER_EMAIL", "alerts@example.com")
		t.Setenv("SW_SENDER_PASSWORD", "app-password")
		t.Setenv("SW_RECIPIENT_EMAIL", "me@example.com")
		t.Setenv("SW_PRODUCT_URL", "https://example.com/product")
		t.Setenv("SW_PINCODE", "110001")
		t.Setenv("SW_STATE_BACKEND", "sqlite")
		t.Setenv("SW_TELEGRAM_TOKEN", "telegramToken")
		t.Setenv("SW_TELEGRAM_CHAT_ID", "42")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "https://example.com/product", cfg.Product.URL)
		assert.Equal(t, "110001", cfg.Product.Pincode)
		assert.Equal(t, "Amul High Protein Buttermilk", cfg.Product.Name)
		assert.Equal(t, 90*time.Second, cfg.Probe.Timeout)
		assert.Equal(t, config.BackendSQLite, cfg.State.Backend)
		assert.Equal(t, "/tmp/stockwatch_status.txt", cfg.State.Path)
		assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.Equal(t, "alerts@example.com", cfg.SMTP.Sender)
		assert.Equal(t, "me@example.com", cfg.SMTP.Recipient)
		assert.Equal(t, "telegramToken", cfg.Tg.Token)
		assert.Equal(t, int64(42), cfg.Tg.ChatID)
	})
}
