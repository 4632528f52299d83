package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	cli "github.com/jawher/mow.cli"
	"github.com/joho/godotenv"

	"github.com/atorrez/pricewatch/pkg/model"
	"github.com/atorrez/pricewatch/pkg/pipeline"
	"github.com/atorrez/pricewatch/pkg/source"
	"github.com/atorrez/pricewatch/pkg/storage"
	"github.com/atorrez/pricewatch/pkg/web"
)

func main() {
	// a local .env may supply PRICEWATCH_* defaults
	_ = godotenv.Load()

	app := cli.App("pricewatch", "iPhone price monitor: scrapes a fixed product catalog and keeps an append-only price history")

	app.Command("healthcheck", "validate the CLI runs", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			fmt.Printf("[ok] pricewatch CLI is working | utc=%s\n", time.Now().UTC().Format(time.RFC3339))
		}
	})

	app.Command("scrape", "fetch product snapshots and print them as JSON (no persistence)", func(cmd *cli.Cmd) {
		baseURL := cmd.String(cli.StringOpt{
			Name:   "base-url",
			Value:  pipeline.DefaultBaseURL,
			Desc:   "base URL of the catalog site (normalized to end with /)",
			EnvVar: "PRICEWATCH_BASE_URL",
		})
		cmd.Action = func() {
			src, err := source.New(model.DefaultSource, source.Options{BaseURL: *baseURL})
			if err != nil {
				log.Fatal(err)
			}
			snaps, err := src.Fetch()
			if err != nil {
				log.Fatal(err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snaps); err != nil {
				log.Fatal(err)
			}
		}
	})

	app.Command("run", "run the full pipeline and persist the merged history", func(cmd *cli.Cmd) {
		baseURL := cmd.String(cli.StringOpt{
			Name:   "base-url",
			Value:  pipeline.DefaultBaseURL,
			Desc:   "base URL of the catalog site",
			EnvVar: "PRICEWATCH_BASE_URL",
		})
		csvPath := cmd.String(cli.StringOpt{
			Name:   "csv",
			Value:  pipeline.DefaultCSVPath,
			Desc:   "output CSV path",
			EnvVar: "PRICEWATCH_CSV",
		})
		jsonPath := cmd.String(cli.StringOpt{
			Name:   "json",
			Value:  pipeline.DefaultJSONPath,
			Desc:   "output JSON path (also the prior-history baseline)",
			EnvVar: "PRICEWATCH_JSON",
		})
		imagesDir := cmd.String(cli.StringOpt{
			Name:   "images",
			Value:  pipeline.DefaultImagesDir,
			Desc:   "directory for cached product images",
			EnvVar: "PRICEWATCH_IMAGES",
		})
		cacheDir := cmd.String(cli.StringOpt{
			Name:   "cache",
			Desc:   "optional on-disk page response cache directory",
			EnvVar: "PRICEWATCH_CACHE",
		})
		cmd.Action = func() {
			merged, err := pipeline.Run(pipeline.Config{
				BaseURL:   *baseURL,
				CSVPath:   *csvPath,
				JSONPath:  *jsonPath,
				ImagesDir: *imagesDir,
				CacheDir:  *cacheDir,
			})
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("stored: %d snapshots\n", len(merged))
			fmt.Printf("csv:    %s\n", *csvPath)
			fmt.Printf("json:   %s\n", *jsonPath)
			fmt.Printf("images: %s\n", *imagesDir)
		}
	})

	app.Command("report", "render the persisted history into a static HTML page", func(cmd *cli.Cmd) {
		jsonPath := cmd.String(cli.StringOpt{
			Name:   "json",
			Value:  pipeline.DefaultJSONPath,
			Desc:   "history JSON to report on",
			EnvVar: "PRICEWATCH_JSON",
		})
		outPath := cmd.String(cli.StringOpt{
			Name:  "o out",
			Value: "docs/index.html",
			Desc:  "output HTML file",
		})
		cmd.Action = func() {
			history, err := storage.ReadJSONIfExists(*jsonPath)
			if err != nil {
				log.Fatal(err)
			}
			if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
				log.Fatal(err)
			}
			f, err := os.Create(*outPath)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()

			c := web.ReportContext{
				Title:       "iPhone Price Monitor",
				GeneratedAt: time.Now(),
				Latest:      web.LatestPerModel(history),
				History:     history,
			}
			if err := web.RenderReport(f, c); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("report: %s (%d records)\n", *outPath, len(history))
		}
	})

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
