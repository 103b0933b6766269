package soccerstats

import (
	"context"
	"fmt"
	"net/url"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/competition"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/fixture"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/standing"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/resilience"
	"github.com/riskibarqy/no-draw-tracker/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultAccept      = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	defaultAcceptLang  = "en-US,en;q=0.5"
	defaultTimeout     = 20 * time.Second
	maxResponseBody    = 8 << 20
	maxRedirectsFollow = 5
)

var (
	errTransient      = crerr.New("soccerstats transient failure")
	ErrUpstreamStatus = crerr.New("soccerstats unexpected status")
)

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	Timeout        time.Duration
	MaxRetries     int
	UserAgent      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Backoff returns the wait before retry attempt n (1-based). Defaults to n seconds.
	Backoff func(attempt int) time.Duration
}

// Client fetches soccerstats pages and runs the extractors over them.
type Client struct {
	http       *fasthttp.Client
	timeout    time.Duration
	maxRetries int
	userAgent  string
	logger     *logging.Logger
	breakers   *resilience.BreakerSet
	backoff    func(int) time.Duration
	flight     resilience.Group[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			MaxResponseBodySize:      maxResponseBody,
			NoDefaultUserAgentHeader: true,
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	backoff := cfg.Backoff
	if backoff == nil {
		backoff = func(attempt int) time.Duration { return time.Duration(attempt) * time.Second }
	}

	breakerCfg := cfg.CircuitBreaker
	if breakerCfg.Enabled {
		breakerCfg = resilience.NormalizeCircuitBreakerConfig(breakerCfg)
	}

	return &Client{
		http:       httpClient,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		userAgent:  userAgent,
		logger:     logger,
		breakers:   resilience.NewBreakerSet(breakerCfg, nil),
		backoff:    backoff,
	}
}

// FetchStandings downloads the competition page and extracts its standings table.
func (c *Client) FetchStandings(ctx context.Context, src competition.Source) ([]standing.TeamRecord, error) {
	body, err := c.FetchPage(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch standings page competition=%s: %w", src.Name, err)
	}

	records, err := ExtractStandings(body, src)
	if err != nil {
		return nil, fmt.Errorf("extract standings competition=%s: %w", src.Name, err)
	}
	return records, nil
}

// FetchUpcomingFixtures downloads the competition page and lists fixtures after now.
func (c *Client) FetchUpcomingFixtures(ctx context.Context, src competition.Source, now time.Time) ([]fixture.Candidate, error) {
	body, err := c.FetchPage(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures page competition=%s: %w", src.Name, err)
	}

	items, err := ExtractUpcomingFixtures(body, now)
	if err != nil {
		return nil, fmt.Errorf("extract fixtures competition=%s: %w", src.Name, err)
	}
	return items, nil
}

// DebugFixtureRows downloads pageURL and dumps the first limit fixture-looking rows.
func (c *Client) DebugFixtureRows(ctx context.Context, pageURL string, limit int) ([]DebugRow, error) {
	body, err := c.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ExtractDebugRows(body, limit)
}

// BreakerStates reports the breaker state per page host.
func (c *Client) BreakerStates() map[string]resilience.CircuitState {
	return c.breakers.States()
}

// FetchPage GETs pageURL with browser-like headers and returns the raw body.
// Concurrent requests for the same URL share one round trip.
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid page url %q", usecase.ErrInvalidInput, pageURL)
	}

	breaker := c.breakers.For(parsed.Host)
	if breaker != nil {
		if err := breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "soccerstats circuit breaker rejected request", "host", parsed.Host, "state", breaker.State())
			return nil, fmt.Errorf("%w: %s is temporarily unavailable", usecase.ErrDependencyUnavailable, parsed.Host)
		}
	}

	body, err, _ := c.flight.Do(pageURL, func() ([]byte, error) {
		raw, reqErr := c.executeRequest(ctx, pageURL)
		if breaker != nil {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				breaker.RecordFailure()
			} else {
				breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) executeRequest(ctx context.Context, pageURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, status, err := c.doOnce(ctx, pageURL)
		switch {
		case err != nil:
			lastErr = crerr.Wrapf(errTransient, "send request: %v", err)
		case status >= 200 && status < 300:
			return body, nil
		case isRetryableStatus(status):
			lastErr = crerr.Wrapf(errTransient, "status=%d", status)
		default:
			return nil, crerr.Wrapf(ErrUpstreamStatus, "status=%d url=%s", status, pageURL)
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt + 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "soccerstats request failed", "url", pageURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, pageURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(pageURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderUserAgent, c.userAgent)
	req.Header.Set(fasthttp.HeaderAccept, defaultAccept)
	req.Header.Set(fasthttp.HeaderAcceptLanguage, defaultAcceptLang)
	req.Header.Set(fasthttp.HeaderConnection, "keep-alive")

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, 0, context.DeadlineExceeded
	}

	req.SetTimeout(timeout)

	if err := c.http.DoRedirects(req, resp, maxRedirectsFollow); err != nil {
		return nil, 0, err
	}
	return append([]byte(nil), resp.Body()...), resp.StatusCode(), nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}
