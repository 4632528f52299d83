package model

import (
	"errors"
	"testing"
	"time"
)

func validSnapshot() Snapshot {
	return Snapshot{
		Timestamp:  time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		Source:     DefaultSource,
		Model:      "iphone_15",
		Title:      "iPhone 15",
		Currency:   DefaultCurrency,
		PriceEUR:   799,
		ProductURL: "https://example.com/iphone_15.html",
		ImageURL:   "https://example.com/img/iphone_15.jpg",
	}
}

func TestValidate(t *testing.T) {
	if err := validSnapshot().Validate(); err != nil {
		t.Fatalf("valid snapshot rejected: %v", err)
	}

	cases := []struct {
		field  string
		mutate func(*Snapshot)
	}{
		{"timestamp", func(s *Snapshot) { s.Timestamp = time.Time{} }},
		{"model", func(s *Snapshot) { s.Model = "" }},
		{"title", func(s *Snapshot) { s.Title = "" }},
		{"price_eur", func(s *Snapshot) { s.PriceEUR = -1 }},
		{"product_url", func(s *Snapshot) { s.ProductURL = "" }},
		{"image_url", func(s *Snapshot) { s.ImageURL = "" }},
	}
	for _, c := range cases {
		s := validSnapshot()
		c.mutate(&s)
		err := s.Validate()
		if err == nil {
			t.Errorf("snapshot with bad %s accepted", c.field)
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("error for %s is %T, want *ValidationError", c.field, err)
			continue
		}
		if ve.Field != c.field {
			t.Errorf("error names field %q, want %q", ve.Field, c.field)
		}
	}
}

func TestDayBucket(t *testing.T) {
	s := validSnapshot()
	if got := s.DayBucket(); got != "2026-08-28" {
		t.Errorf("DayBucket() = %q, want %q", got, "2026-08-28")
	}

	// timestamps in other zones bucket by their UTC day
	loc := time.FixedZone("UTC+3", 3*60*60)
	s.Timestamp = time.Date(2026, 8, 28, 1, 0, 0, 0, loc) // 2026-08-27 22:00 UTC
	if got := s.DayBucket(); got != "2026-08-27" {
		t.Errorf("DayBucket() = %q, want %q", got, "2026-08-27")
	}
}

func TestKey(t *testing.T) {
	a := validSnapshot()
	b := validSnapshot()
	b.Title = "different title"
	b.Timestamp = b.Timestamp.Add(5 * time.Hour) // same day
	if a.Key() != b.Key() {
		t.Errorf("same model/price/day should share a key: %q vs %q", a.Key(), b.Key())
	}

	c := validSnapshot()
	c.PriceEUR = 749
	if a.Key() == c.Key() {
		t.Error("different price should change the key")
	}

	d := validSnapshot()
	d.Timestamp = d.Timestamp.AddDate(0, 0, 1)
	if a.Key() == d.Key() {
		t.Error("different day should change the key")
	}
}
