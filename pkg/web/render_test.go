package web

import (
	"strings"
	"testing"
	"time"

	"github.com/atorrez/pricewatch/pkg/model"
)

func snap(m string, price float64, ts time.Time) model.Snapshot {
	return model.Snapshot{
		Timestamp:  ts,
		Source:     model.DefaultSource,
		Model:      m,
		Title:      "Apple " + m,
		Currency:   "EUR",
		PriceEUR:   price,
		ProductURL: "https://example.com/" + m + ".html",
		ImageURL:   "https://example.com/img/" + m + ".jpg",
	}
}

func TestLatestPerModel(t *testing.T) {
	day := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	history := []model.Snapshot{
		snap("iphone_15", 799, day),
		snap("iphone_16", 899, day),
		snap("iphone_15", 749, day.AddDate(0, 0, 1)), // newer price for 15
	}

	latest := LatestPerModel(history)
	if len(latest) != 2 {
		t.Fatalf("got %d models, want 2", len(latest))
	}
	if latest[0].Model != "iphone_15" || latest[0].PriceEUR != 749 {
		t.Errorf("latest iphone_15 = %+v, want the newer 749 record", latest[0])
	}
	if latest[1].Model != "iphone_16" {
		t.Errorf("model order not preserved: %+v", latest[1])
	}
}

func TestRenderReport(t *testing.T) {
	day := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	history := []model.Snapshot{
		snap("iphone_15", 799, day),
		snap("iphone_16", 899, day),
	}

	var sb strings.Builder
	err := RenderReport(&sb, ReportContext{
		Title:       "iPhone Price Monitor",
		GeneratedAt: day,
		Latest:      LatestPerModel(history),
		History:     history,
	})
	if err != nil {
		t.Fatal(err)
	}

	out := sb.String()
	for _, want := range []string{"iPhone Price Monitor", "iphone_15", "799.00 EUR", "2026-08-28"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}
