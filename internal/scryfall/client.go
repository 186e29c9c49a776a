package scryfall

import (
	"cardvault/internal/card"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.scryfall.com"
	DefaultUserAgent = "cardvault/1.0"

	rateLimitDelay = 100 * time.Millisecond // Scryfall asks for 50-100ms between requests
	requestTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

var ErrNotFound = errors.New("card not found")

// Client performs single best-effort lookups against Scryfall. It never
// retries.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	log         *zap.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRateLimit sets the minimum spacing between requests. Zero disables
// pacing.
func WithRateLimit(every time.Duration) Option {
	return func(c *Client) {
		if every <= 0 {
			c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.rateLimiter = rate.NewLimiter(rate.Every(every), 1)
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: requestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   DefaultUserAgent,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks cards up by name. Any failure, including a response of an
// unexpected shape, yields no records; the cause is logged.
func (c *Client) Search(ctx context.Context, name string) []card.Record {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var result searchResponse
	err := c.doRequest(ctx, "/cards/search", url.Values{"q": {name}}, &result)
	if errors.Is(err, ErrNotFound) {
		c.log.Debug("no cards matched", zap.String("query", name))
		return nil
	}
	if err != nil {
		c.log.Warn("card search failed", zap.String("query", name), zap.Error(err))
		return nil
	}
	if result.Data == nil {
		c.log.Warn("card search returned no data array", zap.String("query", name), zap.String("object", result.Object))
		return nil
	}

	records := make([]card.Record, 0, len(result.Data))
	for _, item := range result.Data {
		r := item.record()
		if err := r.Validate(); err != nil {
			c.log.Debug("skipping card without id", zap.String("name", item.Name))
			continue
		}
		records = append(records, r)
	}
	return records
}

// Card fetches one card by its Scryfall ID.
func (c *Client) Card(ctx context.Context, id string) (card.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return card.Record{}, card.ErrEmptyID
	}

	var item apiCard
	if err := c.doRequest(ctx, "/cards/"+url.PathEscape(id), nil, &item); err != nil {
		return card.Record{}, fmt.Errorf("failed to get card %s: %w", id, err)
	}

	r := item.record()
	if err := r.Validate(); err != nil {
		return card.Record{}, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	return r, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values, result any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
			return &apiErr
		}
		return fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}
}
