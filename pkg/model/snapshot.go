// Package model defines the snapshot record produced by scraping and
// persisted to storage.
package model

import (
	"fmt"
	"time"
)

// DefaultSource identifies the built-in catalog source in persisted records.
const DefaultSource = "github_pages_catalog"

// DefaultCurrency is the currency code attached to every snapshot.
const DefaultCurrency = "EUR"

// Snapshot is one observation of one product at one point in time.
// Sku and ImagePath are optional: Sku may be absent from the source page and
// ImagePath is nil until the image cache resolves it.
type Snapshot struct {
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source"`
	Model      string    `json:"model"`
	Title      string    `json:"title"`
	Sku        *string   `json:"sku"`
	Currency   string    `json:"currency"`
	PriceEUR   float64   `json:"price_eur"`
	ProductURL string    `json:"product_url"`
	ImageURL   string    `json:"image_url"`
	ImagePath  *string   `json:"image_path"`
}

// ValidationError reports a snapshot that violates its required-field or
// type invariants, typically one loaded back from persisted history.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid snapshot: field %q %s", e.Field, e.Reason)
}

// Validate checks the required-field invariants from the data model.
func (s Snapshot) Validate() error {
	if s.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Reason: "is zero"}
	}
	if s.Model == "" {
		return &ValidationError{Field: "model", Reason: "is empty"}
	}
	if s.Title == "" {
		return &ValidationError{Field: "title", Reason: "is empty"}
	}
	if s.PriceEUR < 0 {
		return &ValidationError{Field: "price_eur", Reason: "is negative"}
	}
	if s.ProductURL == "" {
		return &ValidationError{Field: "product_url", Reason: "is empty"}
	}
	if s.ImageURL == "" {
		return &ValidationError{Field: "image_url", Reason: "is empty"}
	}
	return nil
}

// DayBucket returns the UTC calendar day the snapshot falls into.
// It is part of the dedupe identity key: one price point per model per day.
func (s Snapshot) DayBucket() string {
	return s.Timestamp.UTC().Format("2006-01-02")
}

// Key returns the dedupe identity of the snapshot. Two snapshots with equal
// keys are considered the same observation regardless of their other fields.
func (s Snapshot) Key() string {
	return fmt.Sprintf("%s|%.2f|%s", s.Model, s.PriceEUR, s.DayBucket())
}
