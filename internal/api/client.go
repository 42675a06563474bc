package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jmagar/giphy-launchbar/internal/model"
)

// BaseURL is the GIPHY GIF endpoint family.
const BaseURL = "https://api.giphy.com/v1/gifs"

// ErrEmptyResponse is returned when a response is missing its data payload
// or cannot be decoded. Callers show an informational row instead of failing.
var ErrEmptyResponse = errors.New("response contained no GIF data")

// ErrNotFound is returned by GetByID for an unknown id.
var ErrNotFound = fmt.Errorf("%w: GIF not found", ErrEmptyResponse)

// Client talks to the GIPHY API. Every request goes through retryDo.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Key     string
	Rating  string
	Lang    string

	limiter    *tokenBucket
	breaker    *circuitBreaker
	backoff    time.Duration
	maxRetries int
}

// NewClient returns a client for the public API using key.
func NewClient(key string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: BaseURL,
		Key:     key,
		Rating:  model.DefaultRating,
		Lang:    model.DefaultLang,

		// 5 req/s with a burst of 10 keeps paging snappy without tripping
		// the per-key quota.
		limiter:    newTokenBucket(5.0, 10),
		breaker:    newCircuitBreaker(5, 60*time.Second),
		backoff:    500 * time.Millisecond,
		maxRetries: 4,
	}
}

func userAgent() string {
	return model.AppName + "/" + model.Version
}

// retryDo is the single gateway for every outbound request.
//
// It enforces, in order:
//  1. Rate limiting  - token bucket
//  2. Circuit breaker - rejects immediately when open
//  3. HTTP execution  - with context cancellation
//  4. Retry on 429 / 5xx - exponential backoff, Retry-After respected
//  5. Logging of every attempt, wait, rejection and state change
//
// Caller is responsible for closing the returned response body.
func (c *Client) retryDo(ctx context.Context, label string, makeReq func() (*http.Request, error)) (*http.Response, error) {
	backoff := c.backoff

	for attempt := 0; ; attempt++ {
		waited, err := c.limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("rate limiter cancelled for %s: %w", label, err)
		}
		if waited > time.Millisecond {
			LogRateLimitWait(label, waited)
		}

		cbState, allowed := c.breaker.allow()
		if !allowed {
			LogCircuitRejected(label)
			return nil, fmt.Errorf("%w (label: %s)", ErrCircuitOpen, label)
		}

		req, err := makeReq()
		if err != nil {
			return nil, c.redact(err)
		}
		start := time.Now()
		resp, err := c.HTTP.Do(req)
		duration := time.Since(start)

		if err != nil {
			// Network errors do not count against the breaker.
			err = c.redact(err)
			LogRequest(label, 0, duration, attempt, cbState.String(), err)
			return nil, err
		}

		isAPIError := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if !isAPIError {
			if from, to := c.breaker.record(false); from != to {
				LogCircuitStateChange("circuit_closed", label, from.String(), to.String())
			}
			LogRequest(label, resp.StatusCode, duration, attempt, circuitClosed.String(), nil)
			return resp, nil
		}

		resp.Body.Close()
		from, newState := c.breaker.record(true)
		if newState == circuitOpen && from != circuitOpen {
			LogCircuitStateChange("circuit_opened", label, from.String(), newState.String())
		}
		apiErr := fmt.Errorf("HTTP %s", resp.Status)
		LogRequest(label, resp.StatusCode, duration, attempt, newState.String(), apiErr)

		if attempt >= c.maxRetries || newState == circuitOpen {
			return nil, fmt.Errorf("API %s failed after %d attempts: %w", label, attempt+1, apiErr)
		}

		wait := backoff
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, e := strconv.Atoi(ra); e == nil {
				wait = time.Duration(secs) * time.Second
			}
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff = min(backoff*2, 30*time.Second)
	}
}

func (c *Client) get(ctx context.Context, label, rawURL string) (*http.Response, error) {
	return c.retryDo(ctx, label, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent())
		return req, nil
	})
}

// getJSON decodes the body into v whatever the status: GIPHY reports
// client errors (bad key, unknown id) as JSON without a data payload.
func (c *Client) getJSON(ctx context.Context, label, rawURL string, v any) error {
	resp, err := c.get(ctx, label, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w (%s: HTTP %d): %w", ErrEmptyResponse, label, resp.StatusCode, err)
	}
	return nil
}

// decodeItems keeps every item that decodes. Items that do not are logged
// and dropped so one malformed entry does not hide the rest of the page.
func decodeItems(label string, raws []json.RawMessage) []model.GifItem {
	items := make([]model.GifItem, 0, len(raws))
	for i, raw := range raws {
		var g model.GifItem
		if err := json.Unmarshal(raw, &g); err != nil {
			LogItemSkipped(label, i, err)
			continue
		}
		g.Raw = raw
		items = append(items, g)
	}
	return items
}

func (c *Client) list(ctx context.Context, label, rawURL string) ([]model.GifItem, error) {
	var resp model.ListResponse
	if err := c.getJSON(ctx, label, rawURL, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w (%s: status %d %s)", ErrEmptyResponse, label, resp.Meta.Status, resp.Meta.Msg)
	}
	return decodeItems(label, resp.Data), nil
}

// Trending fetches one page of trending GIFs. page is 1-based.
func (c *Client) Trending(ctx context.Context, page int) ([]model.GifItem, error) {
	return c.list(ctx, "trending", c.TrendingURL(page))
}

// Search fetches one page of search results. page is 0-based.
func (c *Client) Search(ctx context.Context, keyword string, page int) ([]model.GifItem, error) {
	return c.list(ctx, "search", c.SearchURL(keyword, page))
}

// GetByID fetches a single GIF.
func (c *Client) GetByID(ctx context.Context, id string) (*model.GifItem, error) {
	var resp model.ItemResponse
	if err := c.getJSON(ctx, "gif", c.DetailURL(id), &resp); err != nil {
		return nil, err
	}
	raw := bytes.TrimSpace(resp.Data)
	if len(raw) == 0 || raw[0] != '{' {
		if resp.Meta.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w (gif %s)", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w (gif %s: status %d %s)", ErrEmptyResponse, id, resp.Meta.Status, resp.Meta.Msg)
	}
	var g model.GifItem
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("%w (gif %s): %w", ErrEmptyResponse, id, err)
	}
	g.Raw = raw
	return &g, nil
}

// GetData downloads a binary payload such as an image rendition.
func (c *Client) GetData(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.get(ctx, "image", rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: HTTP %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return data, nil
}
