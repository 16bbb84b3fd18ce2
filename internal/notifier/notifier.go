// Package notifier delivers "back in stock" alerts. Delivery failures are
// reported to the caller but are always non-fatal for the check cycle.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/restockd/stockwatch/internal/models"
)

type Notifier interface {
	// Notify sends one alert for the given product.
	Notify(ctx context.Context, product models.Product) error
}

// subjectLine is the fixed alert subject.
func subjectLine(productName string) string {
	return fmt.Sprintf("Stock Alert: %s is back in stock!", productName)
}

// bodyText is the plain-text alert body.
func bodyText(product models.Product) string {
	return fmt.Sprintf(
		"The product (%s) is now in stock at: %s\n\n"+
			"This is an automated notification. Please check the website to confirm.",
		product.Name, product.URL,
	)
}

// Multi fans an alert out to several channels. Every channel is attempted;
// errors are joined.
type Multi struct {
	log     *slog.Logger
	targets []Notifier
}

// NewMulti creates a fan-out notifier over the given channels.
func NewMulti(log *slog.Logger, targets ...Notifier) *Multi {
	return &Multi{log: log, targets: targets}
}

// Notify delivers to all channels; a failing channel does not stop the rest.
func (m *Multi) Notify(ctx context.Context, product models.Product) error {
	var errs []error
	for _, target := range m.targets {
		if err := target.Notify(ctx, product); err != nil {
			m.log.ErrorContext(ctx, "Notification channel failed", "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
