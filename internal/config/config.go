package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrEmptySender = errors.New(
		"error getting SW_SENDER_EMAIL: variable not specified or contains an empty string")
	ErrEmptyPassword = errors.New(
		"error getting SW_SENDER_PASSWORD: variable not specified or contains an empty string")
	ErrEmptyRecipient = errors.New(
		"error getting SW_RECIPIENT_EMAIL: variable not specified or contains an empty string")
)

type Config struct {
	Env      string // Env is the current environment: local, dev, prod.
	HTTPAddr string // HTTPAddr is the listen address of the trigger endpoint.
	Product  Product
	Probe    Probe
	State    State
	SMTP     SMTP
	Tg       Telegram
}

type Product struct {
	Name    string // Name is the human-readable product name used in notifications.
	URL     string // URL is the product page the prober navigates to.
	Pincode string // Pincode is the delivery postal code submitted on the page.
}

type Probe struct {
	Timeout        time.Duration // Timeout bounds one full browser session.
	ScreenshotPath string        // ScreenshotPath receives a debug screenshot on probe failure.
}

// State backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type State struct {
	Backend     string // Backend is "file" or "sqlite".
	Path        string // Path is the status file location for the file backend.
	StoragePath string // StoragePath is the database file for the sqlite backend.
}

type SMTP struct {
	Host      string
	Port      int
	Sender    string
	Password  string
	Recipient string
}

type Telegram struct {
	Token  string // Token is an unique telegram bot token; empty disables the channel.
	ChatID int64  // ChatID is the chat that receives alerts.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("SW")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("PRODUCT_NAME", "Amul High Protein Buttermilk")
	viper.SetDefault("PRODUCT_URL",
		"https://shop.amul.com/en/product/amul-high-protein-buttermilk-200-ml-or-pack-of-30")
	viper.SetDefault("PINCODE", "560060")
	viper.SetDefault("PROBE_TIMEOUT", "90s")
	viper.SetDefault("SCREENSHOT_PATH", "/tmp/stockwatch_debug.png")
	viper.SetDefault("STATE_BACKEND", BackendFile)
	viper.SetDefault("STATE_PATH", "/tmp/stockwatch_status.txt")
	viper.SetDefault("STORAGE_PATH", "/tmp/stockwatch.db")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)

	if viper.GetString("SENDER_EMAIL") == "" {
		panic(ErrEmptySender)
	}
	if viper.GetString("SENDER_PASSWORD") == "" {
		panic(ErrEmptyPassword)
	}
	if viper.GetString("RECIPIENT_EMAIL") == "" {
		panic(ErrEmptyRecipient)
	}

	return &Config{
		Env:      viper.GetString("ENV"),
		HTTPAddr: viper.GetString("HTTP_ADDR"),
		Product: Product{
			Name:    viper.GetString("PRODUCT_NAME"),
			URL:     viper.GetString("PRODUCT_URL"),
			Pincode: viper.GetString("PINCODE"),
		},
		Probe: Probe{
			Timeout:        viper.GetDuration("PROBE_TIMEOUT"),
			ScreenshotPath: viper.GetString("SCREENSHOT_PATH"),
		},
		State: State{
			Backend:     viper.GetString("STATE_BACKEND"),
			Path:        viper.GetString("STATE_PATH"),
			StoragePath: viper.GetString("STORAGE_PATH"),
		},
		SMTP: SMTP{
			Host:      viper.GetString("SMTP_HOST"),
			Port:      viper.GetInt("SMTP_PORT"),
			Sender:    viper.GetString("SENDER_EMAIL"),
			Password:  viper.GetString("SENDER_PASSWORD"),
			Recipient: viper.GetString("RECIPIENT_EMAIL"),
		},
		Tg: Telegram{
			Token:  viper.GetString("TELEGRAM_TOKEN"),
			ChatID: viper.GetInt64("TELEGRAM_CHAT_ID"),
		},
	}
}
