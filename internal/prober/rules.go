package prober

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/restockd/stockwatch/internal/models"
)

// Rule maps a page predicate to a stock status. Rules run in order, first
// match wins; the ordering encodes risk tolerance (a false out-of-stock is
// safe, a false in-stock wastes a notification) and must stay
// negative-positive-negative with a conservative fallback.
type Rule struct {
	Name   string
	Match  func(snap *Snapshot) bool
	Status models.StockStatus
}

// FallbackRuleName is reported when no rule matched and the conservative
// default applied.
const FallbackRuleName = "default"

var undeliverableRe = regexp.MustCompile(`(?i)not deliverable|not available at`)

// DefaultRules returns the classification chain for the current site markup.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "sold out banner",
			Match:  func(s *Snapshot) bool { return s.SoldOutVisible },
			Status: models.StatusOutOfStock,
		},
		{
			Name:   "add to cart enabled",
			Match:  func(s *Snapshot) bool { return s.AddToCartVisible && s.AddToCartEnabled },
			Status: models.StatusInStock,
		},
		{
			Name:   "undeliverable text",
			Match:  matchUndeliverable,
			Status: models.StatusOutOfStock,
		},
	}
}

// matchUndeliverable scans the rendered page text for "not deliverable" /
// "not available at" copy.
func matchUndeliverable(s *Snapshot) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.HTML))
	if err != nil {
		return false
	}

	return undeliverableRe.MatchString(doc.Find("body").Text())
}

// Classify runs the rule chain over a snapshot and returns the resulting
// status together with the name of the matched rule. Absence of any positive
// signal is treated as unavailability, not uncertainty.
func Classify(snap *Snapshot, rules []Rule) (models.StockStatus, string) {
	for _, rule := range rules {
		if rule.Match(snap) {
			return rule.Status, rule.Name
		}
	}

	return models.StatusOutOfStock, FallbackRuleName
}
