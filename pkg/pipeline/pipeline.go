// Package pipeline sequences scrape, image enrichment, merge and persist.
package pipeline

import (
	"time"

	"github.com/atorrez/pricewatch/pkg/dedupe"
	"github.com/atorrez/pricewatch/pkg/fetch"
	"github.com/atorrez/pricewatch/pkg/imagecache"
	"github.com/atorrez/pricewatch/pkg/model"
	"github.com/atorrez/pricewatch/pkg/source"
	"github.com/atorrez/pricewatch/pkg/storage"
)

// Config carries everything a run needs. No package-level mutable state:
// callers own the configuration.
type Config struct {
	BaseURL   string
	CSVPath   string
	JSONPath  string
	ImagesDir string

	// SourceName selects a registered source; empty means the default
	// catalog source.
	SourceName string
	// Pages overrides the source's fixed page list (tests mostly).
	Pages     []string
	UserAgent string
	Timeout   time.Duration
	Retry     fetch.Policy
	// CacheDir enables the page collector's on-disk response cache.
	CacheDir string
}

// Default paths match the original deployment layout.
const (
	DefaultBaseURL   = "https://andres-torrez.github.io/iphone-catalog/"
	DefaultCSVPath   = "data/prices.csv"
	DefaultJSONPath  = "data/prices.json"
	DefaultImagesDir = "data/images"
)

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.CSVPath == "" {
		c.CSVPath = DefaultCSVPath
	}
	if c.JSONPath == "" {
		c.JSONPath = DefaultJSONPath
	}
	if c.ImagesDir == "" {
		c.ImagesDir = DefaultImagesDir
	}
	if c.SourceName == "" {
		c.SourceName = model.DefaultSource
	}
	return c
}

// Run executes one pipeline pass: scrape the configured pages, cache each
// product image, merge with prior history and overwrite both outputs with
// the deduplicated set. Any failure before the persist step aborts the run
// without touching the output files. The merged set is returned for caller
// reporting; the pipeline itself never prints.
func Run(cfg Config) ([]model.Snapshot, error) {
	cfg = cfg.withDefaults()

	src, err := source.New(cfg.SourceName, source.Options{
		BaseURL:   cfg.BaseURL,
		Pages:     cfg.Pages,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Retry:     cfg.Retry,
		CacheDir:  cfg.CacheDir,
	})
	if err != nil {
		return nil, err
	}

	snaps, err := src.Fetch()
	if err != nil {
		return nil, err
	}

	client := fetch.NewClient(fetch.ClientOptions{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Retry:     cfg.Retry,
	})
	for i := range snaps {
		path, err := imagecache.EnsureCached(client, snaps[i].ImageURL, snaps[i].Model, cfg.ImagesDir)
		if err != nil {
			return nil, err
		}
		snaps[i].ImagePath = &path
	}

	history, err := storage.ReadJSONIfExists(cfg.JSONPath)
	if err != nil {
		return nil, err
	}

	merged := dedupe.Merge(history, snaps)

	if err := storage.WriteAll(cfg.JSONPath, cfg.CSVPath, merged); err != nil {
		return nil, err
	}
	return merged, nil
}
