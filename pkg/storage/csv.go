package storage

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/atorrez/pricewatch/pkg/model"
)

// Columns is the fixed CSV column order.
var Columns = []string{
	"timestamp", "source", "model", "title", "sku",
	"currency", "price_eur", "product_url", "image_url", "image_path",
}

func writeCSV(w io.Writer, snaps []model.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, s := range snaps {
		if err := cw.Write(csvRecord(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(s model.Snapshot) []string {
	return []string{
		s.Timestamp.UTC().Format(time.RFC3339),
		s.Source,
		s.Model,
		s.Title,
		derefOrEmpty(s.Sku),
		s.Currency,
		strconv.FormatFloat(s.PriceEUR, 'f', -1, 64),
		s.ProductURL,
		s.ImageURL,
		derefOrEmpty(s.ImagePath),
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
