package oddsService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"blackLedger/models/external"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.the-odds-api.com/v4/sports"

	defaultRateLimit = 2.0
	defaultBurst     = 2
	defaultCallLimit = 500
	defaultTimeout   = 15 * time.Second
)

var ErrProviderUnavailable = errors.New("odds provider unavailable")

// Client talks to The Odds API. Every request counts against a daily call
// budget; once the budget is spent requests fail without leaving the process.
type Client struct {
	apiKey    string
	http      *resty.Client
	limiter   *rate.Limiter
	callLimit int
	now       func() time.Time

	mu        sync.Mutex
	callDay   string
	callsUsed int
}

type ClientOption func(*Client)

func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithCallLimit(limit int) ClientOption {
	return func(c *Client) {
		c.callLimit = limit
	}
}

func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey: apiKey,
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		limiter:   rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		callLimit: defaultCallLimit,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CallsUsed reports how many upstream calls were made today.
func (c *Client) CallsUsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.callDay != c.now().UTC().Format("2006-01-02") {
		return 0
	}
	return c.callsUsed
}

func (c *Client) reserveCall() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.now().UTC().Format("2006-01-02")
	if c.callDay != today {
		c.callDay = today
		c.callsUsed = 0
	}
	if c.callLimit > 0 && c.callsUsed >= c.callLimit {
		return fmt.Errorf("%w: daily call limit of %d reached", ErrProviderUnavailable, c.callLimit)
	}
	c.callsUsed++
	return nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	if err := c.reserveCall(); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("apiKey", c.apiKey).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s returned %d: %s", ErrProviderUnavailable, path, resp.StatusCode(), resp.String())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: error parsing json err: %v", ErrProviderUnavailable, err)
	}
	return nil
}

// ListEvents returns the upcoming events for a sport key such as basketball_nba.
func (c *Client) ListEvents(ctx context.Context, sportKey string) ([]external.OddsAPI_Event, error) {
	var events []external.OddsAPI_Event
	err := c.get(ctx, fmt.Sprintf("/%s/events", sportKey), map[string]string{
		"regions": "us",
		"markets": "h2h,totals,spreads",
	}, &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListOdds returns games with bookmaker prices for one market.
func (c *Client) ListOdds(ctx context.Context, sportKey string, market string) ([]external.OddsAPI_Game, error) {
	var games []external.OddsAPI_Game
	err := c.get(ctx, fmt.Sprintf("/%s/odds", sportKey), map[string]string{
		"regions":    "us",
		"markets":    market,
		"oddsFormat": "american",
	}, &games)
	if err != nil {
		return nil, err
	}
	return games, nil
}
