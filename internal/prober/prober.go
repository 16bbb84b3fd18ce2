// Package prober drives a headless browser to the product page, submits the
// delivery pincode and classifies the resulting page as in-stock or
// out-of-stock. Any automation failure is returned as an error; the caller
// treats it as "no information this cycle".
package prober

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/restockd/stockwatch/internal/models"
)

// Bounded waits inside one probe. The target site's markup is not
// contractually stable, so every wait tolerates the element never appearing.
const (
	navigateSettle = 2 * time.Second
	modalWait      = 5 * time.Second
	modalPoll      = 250 * time.Millisecond
	locationSettle = 1500 * time.Millisecond
	modalGrace     = 500 * time.Millisecond
	inputWait      = 10 * time.Second
	submitSettle   = 1500 * time.Millisecond
	screenshotWait = 5 * time.Second
)

// Trigger labels tried in order when the pincode modal is not already open.
var modalTriggers = []string{
	"Change Delivery Pincode",
	"Change Pincode",
	"Change Delivery Pin",
	"Deliver to",
}

type Interface interface {
	// Probe runs one availability check and returns a stable status,
	// or an error when the check produced no information.
	Probe(ctx context.Context) (models.StockStatus, error)
}

// Prober performs availability checks with one isolated browser per call.
type Prober struct {
	log            *slog.Logger
	productURL     string
	pincode        string
	screenshotPath string
	timeout        time.Duration
	rules          []Rule
}

// NewProber creates a Prober. rules is the ordered classification chain;
// pass DefaultRules() unless the site markup changed.
func NewProber(
	log *slog.Logger,
	productURL, pincode, screenshotPath string,
	timeout time.Duration,
	rules []Rule,
) *Prober {
	return &Prober{
		log:            log,
		productURL:     productURL,
		pincode:        pincode,
		screenshotPath: screenshotPath,
		timeout:        timeout,
		rules:          rules,
	}
}

// Probe navigates to the product page, ensures the pincode is selected and
// classifies availability. The browser is always torn down, whatever the
// outcome.
func (p *Prober) Probe(ctx context.Context) (models.StockStatus, error) {
	const opn = "prober.Probe"
	log := p.log.With("op", opn)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, p.timeout)
	defer cancelRun()

	var snap Snapshot
	err := chromedp.Run(runCtx,
		chromedp.Navigate(p.productURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(navigateSettle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			log.InfoContext(ctx, "Ensuring pincode modal is open")
			return p.openPincodeModal(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			log.InfoContext(ctx, "Entering pincode", "pincode", p.pincode)
			return p.enterPincode(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return captureSnapshot(ctx, &snap)
		}),
	)
	if err != nil {
		p.saveDebugScreenshot(browserCtx)
		return "", fmt.Errorf("%s: page flow failed: %w", opn, err)
	}

	status, rule := Classify(&snap, p.rules)
	log.InfoContext(runCtx, "Classified availability", "status", status, "rule", rule)

	return status, nil
}

// openPincodeModal makes a best effort to get the "Select Delivery Pincode"
// modal on screen. Later steps tolerate a missing modal, so every path here
// returns nil except a dead browser context.
func (p *Prober) openPincodeModal(ctx context.Context) error {
	// Already visible, nothing to do.
	var open bool
	if err := chromedp.Evaluate(modalHeadingVisibleJS, &open).Do(ctx); err == nil && open {
		return nil
	}

	for _, label := range modalTriggers {
		var clicked bool
		err := chromedp.Evaluate(fmt.Sprintf(clickByTextJS, label), &clicked).Do(ctx)
		if err != nil || !clicked {
			continue
		}
		if err = p.waitForCondition(ctx, modalHeadingVisibleJS, modalWait); err == nil {
			return nil
		}
		// heading never appeared, try the next variant
	}

	// Fallback: the "get my location" button may open/prime the flow.
	var clicked bool
	if err := chromedp.Evaluate(fmt.Sprintf(clickByTextJS, "get my location"), &clicked).Do(ctx); err == nil &&
		clicked {
		if err = chromedp.Sleep(locationSettle).Do(ctx); err != nil {
			return err
		}
	}

	// One last short wait so subsequent queries can still succeed even if the
	// modal didn't appear.
	return chromedp.Sleep(modalGrace).Do(ctx)
}

// enterPincode fills the pincode input and submits it with Enter. The input
// is looked up inside a visible modal dialog first, then anywhere on the page.
func (p *Prober) enterPincode(ctx context.Context) error {
	sel := `input#search, input[placeholder*='Pincode' i]`

	var inModal bool
	if err := chromedp.Evaluate(modalDialogVisibleJS, &inModal).Do(ctx); err == nil && inModal {
		sel = `div.modal-dialog input#search, div.modal-dialog input[placeholder*='Pincode' i]`
	}

	waitCtx, cancel := context.WithTimeout(ctx, inputWait)
	defer cancel()
	if err := chromedp.WaitVisible(sel, chromedp.ByQuery).Do(waitCtx); err != nil {
		return fmt.Errorf("pincode input did not become visible: %w", err)
	}

	if err := chromedp.SendKeys(sel, p.pincode, chromedp.ByQuery).Do(ctx); err != nil {
		return fmt.Errorf("failed to fill pincode input: %w", err)
	}
	if err := chromedp.SendKeys(sel, kb.Enter, chromedp.ByQuery).Do(ctx); err != nil {
		return fmt.Errorf("failed to submit pincode: %w", err)
	}

	// Let the site validate/update UI.
	return chromedp.Sleep(submitSettle).Do(ctx)
}

// waitForCondition polls a boolean JS expression until it holds or the bound
// expires.
func (p *Prober) waitForCondition(ctx context.Context, expr string, bound time.Duration) error {
	deadline := time.Now().Add(bound)
	for {
		var ok bool
		if err := chromedp.Evaluate(expr, &ok).Do(ctx); err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("condition not met within %s", bound)
		}
		if err := chromedp.Sleep(modalPoll).Do(ctx); err != nil {
			return err
		}
	}
}

// saveDebugScreenshot captures a best-effort full-page screenshot for human
// debugging. Failures here are logged and dropped.
func (p *Prober) saveDebugScreenshot(browserCtx context.Context) {
	if p.screenshotPath == "" {
		return
	}

	shotCtx, cancel := context.WithTimeout(browserCtx, screenshotWait)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(shotCtx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		p.log.Warn("Failed to capture debug screenshot", "error", err)
		return
	}
	if err := os.WriteFile(p.screenshotPath, buf, 0o644); err != nil {
		p.log.Warn("Failed to write debug screenshot", "path", p.screenshotPath, "error", err)
		return
	}
	p.log.Info("Saved debug screenshot", "path", p.screenshotPath)
}
