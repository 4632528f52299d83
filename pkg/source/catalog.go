package source

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/atorrez/pricewatch/pkg/fetch"
	"github.com/atorrez/pricewatch/pkg/model"
	"github.com/atorrez/pricewatch/pkg/price"
)

// DefaultPages is the fixed, ordered set of product pages the catalog tracks.
var DefaultPages = []string{
	"iphone_15.html",
	"iphone_16.html",
	"iphone_17.html",
}

const (
	selTitle = "h1.product-title"
	selModel = "[data-model]"
	selPrice = ".price"
	selSku   = ".sku"
	selImage = "img.product-image"
)

// Catalog scrapes a static product catalog site, one product per page.
type Catalog struct {
	baseURL   *url.URL
	pages     []string
	retry     fetch.Policy
	collector *colly.Collector

	// per-Fetch scratch state; the collector callbacks write into it
	now time.Time
	got []model.Snapshot
	err error
}

// NewCatalog builds the catalog source. The base URL is normalized to end
// with a path separator so relative page paths resolve under it.
func NewCatalog(opts Options) (*Catalog, error) {
	raw := opts.BaseURL
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "pricewatch/1.0 (+https://github.com/atorrez/pricewatch)"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	pages := opts.Pages
	if len(pages) == 0 {
		pages = DefaultPages
	}

	collyOpts := []colly.CollectorOption{
		colly.UserAgent(ua),
		colly.AllowURLRevisit(),
	}
	if opts.CacheDir != "" {
		collyOpts = append(collyOpts, colly.CacheDir(opts.CacheDir))
	}
	col := colly.NewCollector(collyOpts...)
	col.SetRequestTimeout(timeout)

	c := &Catalog{
		baseURL:   base,
		pages:     pages,
		retry:     opts.Retry.OrDefault(),
		collector: col,
	}
	col.OnHTML("body", func(e *colly.HTMLElement) {
		c.onPage(e)
	})
	return c, nil
}

// Fetch retrieves every configured page in order. All snapshots from one
// call share a single timestamp. A missing required field on any page, or an
// exhausted download, fails the whole call.
func (c *Catalog) Fetch() ([]model.Snapshot, error) {
	c.now = time.Now().UTC()
	c.got = nil
	c.err = nil

	for _, page := range c.pages {
		pageURL := c.baseURL.String() + page

		before := len(c.got)
		if err := c.visitWithRetry(pageURL); err != nil {
			return nil, err
		}
		if c.err != nil {
			return nil, c.err
		}
		if len(c.got) == before {
			// response parsed but the product markup never appeared
			return nil, &MissingFieldError{Page: pageURL, Selector: selTitle}
		}
	}
	return c.got, nil
}

func (c *Catalog) visitWithRetry(pageURL string) error {
	for attempt := 0; ; attempt++ {
		err := c.collector.Visit(pageURL)
		if err == nil {
			return nil
		}
		if !fetch.IsTransient(err) || attempt >= c.retry.Retries {
			return &fetch.DownloadError{URL: pageURL, Err: err}
		}
		time.Sleep(c.retry.Delay(attempt))
	}
}

func (c *Catalog) onPage(e *colly.HTMLElement) {
	if c.err != nil {
		return
	}
	snap, err := c.extract(e)
	if err != nil {
		c.err = err
		return
	}
	c.got = append(c.got, snap)
}

func (c *Catalog) extract(e *colly.HTMLElement) (model.Snapshot, error) {
	page := e.Request.URL.String()

	title := strings.TrimSpace(e.DOM.Find(selTitle).First().Text())
	if title == "" {
		return model.Snapshot{}, &MissingFieldError{Page: page, Selector: selTitle}
	}

	productModel, ok := e.DOM.Find(selModel).First().Attr("data-model")
	productModel = strings.TrimSpace(productModel)
	if !ok || productModel == "" {
		return model.Snapshot{}, &MissingFieldError{Page: page, Selector: selModel}
	}

	priceText := strings.TrimSpace(e.DOM.Find(selPrice).First().Text())
	if priceText == "" {
		return model.Snapshot{}, &MissingFieldError{Page: page, Selector: selPrice}
	}
	priceEUR, err := price.ParsePrice(priceText)
	if err != nil {
		return model.Snapshot{}, err
	}

	sku := optionalText(e.DOM, selSku)

	src, ok := e.DOM.Find(selImage).First().Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return model.Snapshot{}, &MissingFieldError{Page: page, Selector: selImage}
	}
	imageURL := e.Request.AbsoluteURL(src)

	return model.Snapshot{
		Timestamp:  c.now,
		Source:     model.DefaultSource,
		Model:      productModel,
		Title:      title,
		Sku:        sku,
		Currency:   model.DefaultCurrency,
		PriceEUR:   priceEUR,
		ProductURL: page,
		ImageURL:   imageURL,
	}, nil
}

func optionalText(dom *goquery.Selection, selector string) *string {
	text := strings.TrimSpace(dom.Find(selector).First().Text())
	if text == "" {
		return nil
	}
	return &text
}
