package vbdb

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
	"github.com/riskibarqy/volleyball-feed/internal/domain/news"
	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
	"github.com/riskibarqy/volleyball-feed/internal/platform/logging"
	"github.com/riskibarqy/volleyball-feed/internal/platform/resilience"
	"github.com/riskibarqy/volleyball-feed/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultBaseURL  = "https://api.volleyballdatabased.com"
	DefaultDivision = "D-I"
	maxResponseBody = 6 << 20
)

var errUpstreamTransient = crerr.New("vbdb transient failure")

// RequestObserver receives one call per upstream attempt.
type RequestObserver interface {
	ObserveUpstreamRequest(resource string, statusCode int, elapsed time.Duration)
	ObserveCircuitState(state resilience.CircuitState)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	Observer       RequestObserver
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the volleyball database REST API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	observer     RequestObserver
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight
}

var _ usecase.FeedProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("vbdb")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	c := &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		observer:     cfg.Observer,
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
	c.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		c.logger.Warn("vbdb circuit breaker state changed", "from", from, "to", to)
		if c.observer != nil {
			c.observer.ObserveCircuitState(to)
		}
	})
	return c
}

func (c *Client) FetchLive(ctx context.Context) ([]match.Match, error) {
	var payload []matchPayload
	if err := c.doJSON(ctx, "live", nil, &payload); err != nil {
		return nil, crerr.Wrap(err, "fetch live matches")
	}
	return mapMatches(payload), nil
}

func (c *Client) FetchResults(ctx context.Context, division string) ([]match.Match, error) {
	division = divisionOrDefault(division)

	var payload []matchPayload
	if err := c.doJSON(ctx, "results", url.Values{"division": {division}}, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch results division=%s", division)
	}
	return mapMatches(payload), nil
}

func (c *Client) FetchSchedule(ctx context.Context) ([]match.Match, error) {
	var payload []matchPayload
	if err := c.doJSON(ctx, "schedule", nil, &payload); err != nil {
		return nil, crerr.Wrap(err, "fetch schedule")
	}
	return mapMatches(payload), nil
}

func (c *Client) FetchTeams(ctx context.Context, division string) ([]team.Team, error) {
	division = divisionOrDefault(division)

	var payload []teamPayload
	if err := c.doJSON(ctx, "teams", url.Values{"division": {division}}, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch teams division=%s", division)
	}
	return mapTeams(payload), nil
}

func (c *Client) FetchNews(ctx context.Context) ([]news.Article, error) {
	var payload []articlePayload
	if err := c.doJSON(ctx, "news", nil, &payload); err != nil {
		return nil, crerr.Wrap(err, "fetch news")
	}
	return mapArticles(payload), nil
}

func (c *Client) doJSON(ctx context.Context, resource string, query url.Values, target any) error {
	fullURL := c.baseURL + "/" + resource
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, shared := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, resource, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, execErr
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "vbdb circuit breaker rejected request", "resource", resource, "state", c.breaker.State())
			return fmt.Errorf("%w: volleyball data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}
	if shared {
		c.logger.DebugContext(ctx, "vbdb request shared with in-flight caller", "resource", resource)
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s payload", resource)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, resource, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		started := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.observe(resource, 0, started)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Wrapf(errUpstreamTransient, "send request: %v", err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			c.observe(resource, resp.StatusCode, started)

			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errUpstreamTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errUpstreamTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "vbdb request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) observe(resource string, statusCode int, started time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstreamRequest(resource, statusCode, time.Since(started))
}

// readBody copies the body through a pooled buffer; the returned slice is owned by the caller.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxResponseBody)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func divisionOrDefault(division string) string {
	division = strings.TrimSpace(division)
	if division == "" {
		return DefaultDivision
	}
	return division
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errUpstreamTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
