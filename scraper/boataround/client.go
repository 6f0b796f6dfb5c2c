package boataround

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// FatalError marks transport-level failures: TLS errors, connection
// resets, non-2xx statuses. The scraper never retries these and stops the
// current run; whether the process exits is the top-level caller's call.
type FatalError struct {
	URL string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// PageFetcher is the fetch primitive the scraper depends on. Client is the
// production implementation; tests substitute their own.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	UserAgent string
	// Timeout of 0 disables the request timeout entirely. The site can be
	// very slow and a long batch run prefers waiting over dying early.
	Timeout time.Duration
	// RequestInterval is the minimum delay between two requests; 0 disables
	// rate limiting.
	RequestInterval time.Duration
}

// Client is an explicitly constructed HTTP session with a fixed
// browser-identifying User-Agent. Callers own it and pass it to the scraper;
// there is no ambient shared session.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a Client with the given options.
func NewClient(opts ClientOptions) *Client {
	httpClient := resty.New().
		SetHeader("User-Agent", opts.UserAgent).
		SetTimeout(opts.Timeout)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.RequestInterval), 1)
	}

	return &Client{http: httpClient, limiter: limiter}
}

// FetchPage performs one GET for the given URL and returns the raw body.
// Any transport error or non-success status comes back as a *FatalError.
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	pageURL = strings.TrimSpace(pageURL)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, &FatalError{URL: pageURL, Err: err}
	}
	if res.IsError() {
		return nil, &FatalError{
			URL: pageURL,
			Err: fmt.Errorf("unexpected status %s", res.Status()),
		}
	}

	return res.Body(), nil
}
