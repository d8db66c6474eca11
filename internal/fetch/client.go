// Package fetch downloads plugin resources and workshop items over HTTP.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/log"
	"github.com/previoip/srcds-resource-manager/internal/ui"
)

const maxRedirects = 10

var (
	// ErrStatus marks a response with a non-2xx status.
	ErrStatus = errors.New("fetch: unexpected status")

	ErrTooManyRedirects = errors.New("fetch: too many redirects")
)

// StatusError carries the failing status of a request.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries  int
	RateLimit   float64 // requests per second, <= 0 means unlimited
	WorkshopAPI string
	Backoff     time.Duration
	Reporter    ui.Reporter
	Logger      domain.Logger
	HTTPClient  *http.Client
}

// Client is a domain.Fetcher backed by net/http.
type Client struct {
	http        *http.Client
	limiter     *rate.Limiter
	userAgent   string
	maxRetries  int
	backoff     time.Duration
	workshopAPI string
	reporter    ui.Reporter
	logger      domain.Logger
}

func New(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = domain.DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.WorkshopAPI == "" {
		opts.WorkshopAPI = domain.DefaultWorkshopAPI
	}
	if opts.Reporter == nil {
		opts.Reporter = ui.NopReporter{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NopLogger{}
	}

	hc := opts.HTTPClient
	if hc == nil {
		// Timeout bounds the wait for response headers; bodies may stream longer.
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.ResponseHeaderTimeout = opts.Timeout
		hc = &http.Client{Transport: tr}
	}
	hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return ErrTooManyRedirects
		}
		return nil
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &Client{
		http:        hc,
		limiter:     rate.NewLimiter(limit, 1),
		userAgent:   opts.UserAgent,
		maxRetries:  opts.MaxRetries,
		backoff:     opts.Backoff,
		workshopAPI: opts.WorkshopAPI,
		reporter:    opts.Reporter,
		logger:      opts.Logger,
	}
}

// do sends one request, retrying transport errors, 5xx, 408 and 429 up to
// maxRetries times with exponential backoff. A non-2xx response that is not
// retried comes back as *StatusError.
// The caller closes the body of the returned response.
func (c *Client) do(ctx context.Context, method, url string, body []byte, header http.Header) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff << (attempt - 1)
			c.logger.Warn("fetch: retry %d/%d for %s %s in %s: %v",
				attempt, c.maxRetries, method, url, delay, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		c.logger.Debug("fetch: %s %s", method, url)
		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, ErrTooManyRedirects) {
				return nil, err
			}
			lastErr = err
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()

		statusErr := &StatusError{Method: method, URL: url, Code: resp.StatusCode, Status: resp.Status}
		if !retryable(resp.StatusCode) {
			return nil, statusErr
		}
		lastErr = statusErr
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func retryable(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

var _ domain.Fetcher = (*Client)(nil)
