// Package storage persists snapshot history to JSON and CSV.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/atorrez/pricewatch/pkg/model"
)

// ReadJSONIfExists loads previously persisted history. An absent file is an
// empty history, not an error. Records failing snapshot validation surface
// as *model.ValidationError.
func ReadJSONIfExists(path string) ([]model.Snapshot, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snaps []model.Snapshot
	if err := json.NewDecoder(f).Decode(&snaps); err != nil {
		return nil, fmt.Errorf("storage: decoding %q: %w", path, err)
	}
	for _, s := range snaps {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return snaps, nil
}

func encodeJSON(w io.Writer, snaps []model.Snapshot) error {
	if snaps == nil {
		snaps = []model.Snapshot{}
	}
	return json.NewEncoder(w).Encode(snaps)
}
