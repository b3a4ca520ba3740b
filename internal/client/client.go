package client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Result is the outcome of a single GET. Status is 0 when the request never
// produced an HTTP response.
type Result struct {
	Text   string
	Status int
	Err    error
}

// OK reports whether the request completed with status 200.
func (r Result) OK() bool {
	return r.Status == http.StatusOK
}

// Getter issues a GET and delivers exactly one Result.
type Getter interface {
	Get(ctx context.Context, url string) Result
}

// HTTPClient is the resty-backed Getter used against ledger nodes.
type HTTPClient struct {
	rc *resty.Client
}

// NewHTTPClient creates a client without retries. A zero timeout leaves
// requests bounded only by their context.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	rc := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	return &HTTPClient{rc: rc}
}

func (c *HTTPClient) Get(ctx context.Context, url string) Result {
	resp, err := c.rc.R().SetContext(ctx).Get(url)
	if err != nil {
		slog.Debug("GET failed", "url", url, "error", err)
		return Result{Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		slog.Debug("GET returned non-200 status", "url", url, "status", resp.StatusCode())
		return Result{Status: resp.StatusCode(), Text: resp.String()}
	}

	return Result{Status: resp.StatusCode(), Text: resp.String()}
}
