// Package nominatim resolves free-text addresses to coordinates via the
// OpenStreetMap Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org/search"

// Result holds the outcome of resolving one address. Matched=false means the
// address is unresolved; callers must never read 0,0 coordinates as a
// location.
type Result struct {
	Lat     float64
	Lon     float64
	Matched bool
	// Variant is the address rewrite that produced the match.
	Variant string
}

// Client queries the Nominatim search API with variant fallback, a mandatory
// minimum delay between requests, and one retry on transient server errors.
type Client struct {
	http      *retryablehttp.Client
	limiter   *rate.Limiter
	baseURL   string
	email     string
	userAgent string
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the Nominatim endpoint (tests, self-hosted mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithMinDelay sets the minimum spacing between external requests. Nominatim
// is a shared public service; the delay applies regardless of outcome and is
// enforced globally even when callers geocode concurrently.
func WithMinDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.HTTPClient.Timeout = d }
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Nominatim client. The contact email is passed to the
// service per its usage policy.
func NewClient(email string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 1 // one additional attempt on 5xx or transport errors
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil

	c := &Client{
		http:      rc,
		limiter:   rate.NewLimiter(rate.Every(1500*time.Millisecond), 1),
		baseURL:   defaultBaseURL,
		email:     email,
		userAgent: "listings-cli/1.0 (" + email + ")",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimPlace is one element of the search response array.
type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address, trying each variant in order until one yields
// a result. Exhausting all variants returns Matched=false with a nil error:
// an unresolvable address is an expected steady-state outcome, not a failure.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	for _, variant := range Variants(address) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "nominatim: rate limit wait")
		}

		place, err := c.search(ctx, variant)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			zap.L().Warn("nominatim: variant failed, trying next",
				zap.String("variant", variant),
				zap.Error(err),
			)
			continue
		}
		if place == nil {
			zap.L().Debug("nominatim: empty result", zap.String("variant", variant))
			continue
		}

		lat, latErr := strconv.ParseFloat(place.Lat, 64)
		lon, lonErr := strconv.ParseFloat(place.Lon, 64)
		if latErr != nil || lonErr != nil {
			zap.L().Warn("nominatim: unparseable coordinates",
				zap.String("variant", variant),
				zap.String("lat", place.Lat),
				zap.String("lon", place.Lon),
			)
			continue
		}

		zap.L().Debug("nominatim: resolved",
			zap.String("variant", variant),
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
		)
		return &Result{Lat: lat, Lon: lon, Matched: true, Variant: variant}, nil
	}

	return &Result{Matched: false}, nil
}

// search performs one variant lookup. A nil place with nil error means the
// service answered with no matches.
func (c *Client) search(ctx context.Context, query string) (*nominatimPlace, error) {
	params := url.Values{
		"q":              {query},
		"format":         {"jsonv2"},
		"limit":          {"1"},
		"addressdetails": {"1"},
		"email":          {c.email},
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "nominatim: request %q", query)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("nominatim: status %d for %q", resp.StatusCode, query)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: read body")
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, eris.Wrap(err, "nominatim: parse response")
	}
	if len(places) == 0 {
		return nil, nil
	}
	return &places[0], nil
}
