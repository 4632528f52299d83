package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/atorrez/pricewatch/pkg/model"
)

// WriteAll overwrites both output targets with the canonical snapshot set.
// Both files are staged completely before either target is replaced, so a
// single unwritable target leaves the other one untouched.
func WriteAll(jsonPath, csvPath string, snaps []model.Snapshot) error {
	jsonTmp, err := stage(jsonPath, func(w io.Writer) error {
		return encodeJSON(w, snaps)
	})
	if err != nil {
		return err
	}
	csvTmp, err := stage(csvPath, func(w io.Writer) error {
		return writeCSV(w, snaps)
	})
	if err != nil {
		os.Remove(jsonTmp)
		return err
	}

	if err := os.Rename(jsonTmp, jsonPath); err != nil {
		os.Remove(jsonTmp)
		os.Remove(csvTmp)
		return err
	}
	if err := os.Rename(csvTmp, csvPath); err != nil {
		os.Remove(csvTmp)
		return err
	}
	return nil
}

// stage writes content to a temp file next to target and returns its name.
func stage(target string, write func(w io.Writer) error) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, filepath.Base(target)+".tmp*")
	if err != nil {
		return "", err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
