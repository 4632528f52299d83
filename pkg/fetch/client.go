// Package fetch provides the retrying HTTP transport shared by the page
// scraper and the image cache.
package fetch

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "pricewatch/1.0 (+https://github.com/atorrez/pricewatch)"

// DownloadError wraps a failed transfer: either retries were exhausted on a
// transient failure or the server answered with a non-2xx status.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("download %q: http status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ClientOptions configures a Client. Zero values fall back to sane defaults.
type ClientOptions struct {
	UserAgent string
	Timeout   time.Duration
	Retry     Policy
}

// Client downloads URLs with bounded timeouts and the shared retry policy.
type Client struct {
	http *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	policy := opts.Retry.OrDefault()

	c := resty.New()
	c.SetHeader("User-Agent", ua)
	c.SetHeader("Accept", "text/html,application/xhtml+xml,image/*,*/*")
	c.SetTimeout(timeout)
	c.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	c.SetRetryCount(policy.Retries)
	c.SetRetryWaitTime(policy.BaseDelay)
	c.SetRetryMaxWaitTime(policy.MaxDelay())
	c.AddRetryCondition(func(r *resty.Response, err error) bool {
		return IsTransient(err)
	})

	return &Client{http: c}
}

// Get fetches url and returns the response body. Transient failures are
// retried per the client's policy; a non-2xx status fails immediately.
func (c *Client) Get(url string) ([]byte, error) {
	res, err := c.http.R().Get(url)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &DownloadError{URL: url, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}
