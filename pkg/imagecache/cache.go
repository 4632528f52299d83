// Package imagecache maintains one locally cached image per product model.
package imagecache

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/atorrez/pricewatch/pkg/fetch"
)

// Ext is the fixed extension given to every cached image.
const Ext = ".jpg"

var unsafeRunes = regexp.MustCompile(`[^a-z0-9_-]`)

// CacheKey derives the deterministic filename for a model's cached image:
// lowercased, anything outside [a-z0-9_-] replaced with "-". Two different
// image URLs for the same model share one cache slot on purpose.
func CacheKey(productModel string) string {
	return unsafeRunes.ReplaceAllString(strings.ToLower(productModel), "-") + Ext
}

// EnsureCached returns the local path of the model's image, downloading it
// only when the target file is absent or empty. At most one download happens
// per model per cache lifetime.
func EnsureCached(client *fetch.Client, imageURL, productModel, dir string) (string, error) {
	path := filepath.Join(dir, CacheKey(productModel))

	if fi, err := os.Stat(path); err == nil && fi.Size() > 0 {
		return path, nil
	}

	body, err := client.Get(imageURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, CacheKey(productModel)+".tmp*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("imagecache: %w", err)
	}
	return path, nil
}
