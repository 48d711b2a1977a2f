package hpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://hp-api.onrender.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "hpportal/1.0"

	// maxBodyBytes bounds the decoded response; the full collection is well under this.
	maxBodyBytes = 32 << 20
)

type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout bounds a whole request, including reading the body. It applies
// to the client given by WithHTTPClient too, in either order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sends requests through hc. hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit caps outgoing requests; refreshes are rare so the default is
// one per second.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		userAgent:  DefaultUserAgent,
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	hc.Timeout = c.timeout
	c.httpClient = &hc
	return c
}

// Character is one upstream record reduced to the fields the portal shows.
type Character struct {
	Name     string
	House    string
	Patronus string
	Image    string
}

// rawCharacter matches an element of /characters. Fields stay raw so that a
// missing, null or non-string value collapses to "" instead of failing the
// whole collection.
type rawCharacter struct {
	Name     json.RawMessage `json:"name"`
	House    json.RawMessage `json:"house"`
	Patronus json.RawMessage `json:"patronus"`
	Image    json.RawMessage `json:"image"`
}

func (r rawCharacter) normalize() Character {
	return Character{
		Name:     stringField(r.Name),
		House:    stringField(r.House),
		Patronus: stringField(r.Patronus),
		Image:    stringField(r.Image),
	}
}

func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// FetchAll downloads the whole character collection in one request and
// returns it normalized, in upstream order. Every failure is a *RemoteFetchError.
func (c *Client) FetchAll(ctx context.Context) ([]Character, error) {
	url := c.baseURL + "/characters"

	var raw []*rawCharacter
	if err := c.get(ctx, url, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &RemoteFetchError{URL: url, StatusCode: http.StatusOK, Err: errors.New("decode body: expected a JSON array, got null")}
	}

	out := make([]Character, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			// a bare null element still counts as a record with no fields
			out = append(out, Character{})
			continue
		}
		out = append(out, r.normalize())
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RemoteFetchError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &RemoteFetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteFetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &RemoteFetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(target); err != nil {
		return &RemoteFetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

// ErrRemoteFetch matches any *RemoteFetchError under errors.Is.
var ErrRemoteFetch = errors.New("remote fetch failed")

// RemoteFetchError reports a failed upstream call: transport error,
// non-2xx status, or a body that is not an array of objects.
type RemoteFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RemoteFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

func (e *RemoteFetchError) Is(target error) bool { return target == ErrRemoteFetch }
