// Package linkcheck probes pricing_source URLs for reachability.
package linkcheck

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"ssolint/engine/record"
)

const userAgent = "ssolint/linkchecker (+https://sso.tax)"

// DefaultTimeout bounds a single URL probe.
const DefaultTimeout = 15 * time.Second

// DefaultDelay is the pause between URLs, to stay polite.
const DefaultDelay = 300 * time.Millisecond

// Result is the outcome of probing one URL. A zero Status means no HTTP
// response was obtained and Err explains why.
type Result struct {
	Status int    `json:"status,omitempty"`
	Err    string `json:"error,omitempty"`
}

// Dead reports whether the link should be treated as broken.
func (r Result) Dead() bool {
	return r.Status == 0 || r.Status >= 400
}

// Reason renders the result for the dead-link report.
func (r Result) Reason() string {
	if r.Status != 0 {
		return strconv.Itoa(r.Status)
	}
	return "connection error: " + r.Err
}

// LinkResult is one probed URL in the context of its vendor file.
type LinkResult struct {
	Vendor string `json:"vendor"`
	URL    string `json:"url"`
	Result Result `json:"result"`
}

// Checker probes URLs with HEAD, falling back to GET when the server
// rejects HEAD outright. Redirects are followed automatically.
type Checker struct {
	client *http.Client
	delay  time.Duration
}

// NewChecker creates a checker with the given per-request timeout.
func NewChecker(timeout time.Duration) *Checker {
	return &Checker{
		client: &http.Client{Timeout: timeout},
		delay:  DefaultDelay,
	}
}

// WithDelay overrides the pause between URL probes.
func (c *Checker) WithDelay(delay time.Duration) *Checker {
	c.delay = delay
	return c
}

// Check probes one URL.
func (c *Checker) Check(ctx context.Context, url string) Result {
	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return Result{Err: err.Error()}
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return Result{Err: err.Error()}
		}
		resp.Body.Close()

		if method == http.MethodHead && resp.StatusCode == http.StatusMethodNotAllowed {
			continue // server doesn't allow HEAD, retry with GET
		}
		return Result{Status: resp.StatusCode}
	}
	return Result{Err: "all methods failed"}
}

// CheckFiles probes every pricing_source URL in the given vendor files.
// Files that fail to parse are skipped: link checking is independent of
// validation and must not duplicate its diagnostics. The onResult callback,
// when non-nil, observes each probe as it completes.
func (c *Checker) CheckFiles(ctx context.Context, files []string, onResult func(LinkResult)) ([]LinkResult, error) {
	parser := record.NewParser()
	var dead []LinkResult
	first := true

	for _, path := range files {
		rec, err := parser.ParseFile(path)
		if err != nil {
			continue
		}

		vendor, ok := rec.StringValue(record.FieldName)
		if !ok {
			vendor = filepath.Base(path)
		}

		for _, url := range sourceURLs(rec) {
			if !first {
				select {
				case <-ctx.Done():
					return dead, ctx.Err()
				case <-time.After(c.delay):
				}
			}
			first = false

			lr := LinkResult{Vendor: vendor, URL: url, Result: c.Check(ctx, url)}
			if onResult != nil {
				onResult(lr)
			}
			if lr.Result.Dead() {
				dead = append(dead, lr)
			}
		}
	}
	return dead, nil
}

func sourceURLs(rec record.Record) []string {
	raw := rec.Get(record.FieldPricingSource)
	entries, ok := raw.([]any)
	if !ok {
		entries = []any{raw}
	}

	var urls []string
	for _, entry := range entries {
		if record.IsValidURL(entry) {
			urls = append(urls, entry.(string))
		}
	}
	return urls
}
