package models

// Product identifies the watched product; constant for the process lifetime.
type Product struct {
	Name string
	URL  string
}
