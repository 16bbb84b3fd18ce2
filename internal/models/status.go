package models

import (
	"fmt"
	"strings"
)

// StockStatus is the availability of the watched product.
type StockStatus string

// The two stable status labels. A failed probe is represented by an error,
// never by a third label, and is never persisted.
const (
	StatusInStock    StockStatus = "in-stock"
	StatusOutOfStock StockStatus = "out-of-stock"
)

// Valid reports whether the status is one of the two stable labels.
func (s StockStatus) Valid() bool {
	return s == StatusInStock || s == StatusOutOfStock
}

// ParseStatus converts a raw persisted value into a StockStatus, trimming
// surrounding whitespace. Anything but the two stable labels is rejected.
func ParseStatus(raw string) (StockStatus, error) {
	status := StockStatus(strings.TrimSpace(raw))
	if !status.Valid() {
		return "", fmt.Errorf("invalid stock status %q", raw)
	}

	return status, nil
}
