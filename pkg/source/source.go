// Package source fetches product pages and maps them to snapshots.
package source

import (
	"fmt"
	"time"

	"github.com/atorrez/pricewatch/pkg/fetch"
	"github.com/atorrez/pricewatch/pkg/model"
)

// Source produces one snapshot per known product page.
type Source interface {
	Fetch() ([]model.Snapshot, error)
}

// MissingFieldError reports a required selector or attribute that was absent
// from a scraped page. It fails the whole Fetch call.
type MissingFieldError struct {
	Page     string
	Selector string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("page %q: missing required field %q", e.Page, e.Selector)
}

// Options configures a source. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	// Pages overrides the fixed page list; paths are relative to BaseURL.
	Pages     []string
	UserAgent string
	Timeout   time.Duration
	Retry     fetch.Policy
	// CacheDir enables the collector's on-disk response cache when non-empty.
	CacheDir string
}

// Factory builds a source from shared options.
type Factory func(opts Options) (Source, error)

var registry = map[string]Factory{}

// Register makes a source constructor available under the given name.
// Registering the same name twice panics.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("source: duplicate registration of %q", name))
	}
	registry[name] = f
}

// New builds the source registered under name.
func New(name string, opts Options) (Source, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("source: unknown source %q", name)
	}
	return f(opts)
}

func init() {
	Register(model.DefaultSource, func(opts Options) (Source, error) {
		return NewCatalog(opts)
	})
}
