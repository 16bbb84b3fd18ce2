package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/restockd/stockwatch/internal/models"
	"github.com/restockd/stockwatch/internal/notifier"
	"github.com/restockd/stockwatch/internal/prober"
	"github.com/restockd/stockwatch/internal/repository"
)

// Result strings returned to the HTTP caller. A failed probe still yields the
// success message: the invocation worked, it just produced no information.
const (
	msgSuccess = "Check executed successfully."
)

// Checker is an orchestrator that performs a full check-and-maybe-notify cycle.
type Checker struct {
	log      *slog.Logger
	prober   prober.Interface
	repo     repository.StateRepository
	notifier notifier.Notifier
	product  models.Product
}

type Interface interface {
	// RunCheck performs one full check cycle and returns a human-readable result.
	RunCheck(ctx context.Context) string
}

// NewChecker creates a new Checker instance.
func NewChecker(
	log *slog.Logger,
	prb prober.Interface,
	repo repository.StateRepository,
	ntf notifier.Notifier,
	product models.Product,
) *Checker {
	return &Checker{log: log, prober: prb, repo: repo, notifier: ntf, product: product}
}

// RunCheck probes availability, fires a notification exactly on the
// out-of-stock → in-stock transition and persists the new status. Failures
// are contained per layer: a failed probe leaves state untouched, a failed
// notification never blocks persistence, a failed save only risks a stale
// comparison next cycle. A residual panic is converted to a failure string;
// the process never crashes.
func (c *Checker) RunCheck(ctx context.Context) (result string) {
	const opn = "checker.RunCheck"
	log := c.log.With("op", opn)

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Unexpected error during check", "panic", r)
			result = fmt.Sprintf("Check failed with an error: %v", r)
		}
	}()

	current, err := c.prober.Probe(ctx)
	if err != nil {
		log.WarnContext(ctx, "Probe failed; leaving last known status unchanged", "error", err)
		return msgSuccess
	}

	last := c.lastStatus(ctx)
	log.InfoContext(ctx, "Probe complete", "last", last, "current", current)

	if last == models.StatusOutOfStock && current == models.StatusInStock {
		log.InfoContext(ctx, "Product is back in stock, sending notification",
			"product", c.product.Name)
		if err = c.notifier.Notify(ctx, c.product); err != nil {
			log.ErrorContext(ctx, "Failed to send notification", "error", err)
		}
	}

	if err = c.repo.SetStatus(ctx, current); err != nil {
		log.ErrorContext(ctx, "Failed to persist status", "error", err)
	}

	return msgSuccess
}

// lastStatus loads the persisted status, defaulting to out-of-stock on
// absence (first run) or any read error.
func (c *Checker) lastStatus(ctx context.Context) models.StockStatus {
	last, err := c.repo.GetStatus(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrStatusNotFound) {
			c.log.WarnContext(ctx, "Failed to load last status, assuming out-of-stock", "error", err)
		}
		return models.StatusOutOfStock
	}

	return last
}
