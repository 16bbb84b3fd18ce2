package prober

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Snapshot is everything the classification rules may look at, captured in
// one pass so the rules themselves stay free of browser calls.
type Snapshot struct {
	SoldOutVisible   bool   `json:"soldOutVisible"`
	AddToCartVisible bool   `json:"addToCartVisible"`
	AddToCartEnabled bool   `json:"addToCartEnabled"`
	HTML             string `json:"-"`
}

// In-page helpers. Visibility follows the usual offsetParent/getClientRects
// heuristic; text matching is done on leaf elements to avoid hitting <body>.

const modalHeadingVisibleJS = `(() => {
	const visible = (el) => !!(el && (el.offsetWidth || el.offsetHeight || el.getClientRects().length));
	const re = /select delivery pincode/i;
	for (const el of document.querySelectorAll('h1,h2,h3,h4,h5,h6,div,span,p,label')) {
		if (el.children.length === 0 && re.test(el.textContent || '') && visible(el)) return true;
	}
	return false;
})()`

const modalDialogVisibleJS = `(() => {
	const visible = (el) => !!(el && (el.offsetWidth || el.offsetHeight || el.getClientRects().length));
	for (const el of document.querySelectorAll('div.modal-dialog')) {
		if (visible(el)) return true;
	}
	return false;
})()`

// clickByTextJS clicks the first leaf link/button-like element whose text
// contains the given label (case-insensitive). Returns whether a click
// happened.
const clickByTextJS = `(() => {
	const needle = %q.toLowerCase();
	for (const el of document.querySelectorAll('a,button,span,div,label')) {
		const txt = (el.textContent || '').trim().toLowerCase();
		if (el.children.length === 0 && txt.includes(needle)) { el.click(); return true; }
	}
	return false;
})()`

const availabilityFlagsJS = `(() => {
	const visible = (el) => !!(el && (el.offsetWidth || el.offsetHeight || el.getClientRects().length));
	const res = { soldOutVisible: false, addToCartVisible: false, addToCartEnabled: false };
	for (const el of document.querySelectorAll('div.alert.alert-danger')) {
		if ((el.textContent || '').includes('Sold Out') && visible(el)) { res.soldOutVisible = true; break; }
	}
	for (const btn of document.querySelectorAll('button')) {
		if ((btn.textContent || '').includes('Add to Cart')) {
			res.addToCartVisible = visible(btn);
			res.addToCartEnabled = res.addToCartVisible && !btn.disabled;
			break;
		}
	}
	return res;
})()`

// captureSnapshot evaluates the availability flags in-page and grabs the
// rendered document for the text-based rules.
func captureSnapshot(ctx context.Context, snap *Snapshot) error {
	if err := chromedp.Evaluate(availabilityFlagsJS, snap).Do(ctx); err != nil {
		return fmt.Errorf("failed to evaluate availability flags: %w", err)
	}
	if err := chromedp.OuterHTML("html", &snap.HTML, chromedp.ByQuery).Do(ctx); err != nil {
		return fmt.Errorf("failed to capture page html: %w", err)
	}

	return nil
}
