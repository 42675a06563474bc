package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jmagar/giphy-launchbar/internal/model"
)

// TrendingOffset returns the offset for a 1-based trending page. Pages
// below 1 are treated as page 1.
func TrendingOffset(page int) int {
	return (max(page, 1) - 1) * model.PageSize
}

// SearchOffset returns the offset for a 0-based search page. Negative pages
// are treated as page 0.
func SearchOffset(page int) int {
	return max(page, 0) * model.PageSize
}

const (
	keyParam = "api_key"
	redacted = "REDACTED"
)

func (c *Client) listParams(offset int) url.Values {
	q := url.Values{}
	q.Set(keyParam, c.Key)
	q.Set("limit", strconv.Itoa(model.PageSize))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("rating", c.Rating)
	q.Set("lang", c.Lang)
	return q
}

// TrendingURL builds the request URL for a trending page.
func (c *Client) TrendingURL(page int) string {
	return c.BaseURL + "/trending?" + c.listParams(TrendingOffset(page)).Encode()
}

// SearchURL builds the request URL for a search page.
func (c *Client) SearchURL(keyword string, page int) string {
	q := c.listParams(SearchOffset(page))
	q.Set("q", keyword)
	return c.BaseURL + "/search?" + q.Encode()
}

// DetailURL builds the request URL for a single GIF.
func (c *Client) DetailURL(id string) string {
	q := url.Values{}
	q.Set(keyParam, c.Key)
	return c.BaseURL + "/" + url.PathEscape(id) + "?" + q.Encode()
}

// redactURL replaces the key in rawURL so it can be shown or logged.
func (c *Client) redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if c.Key == "" {
			return rawURL
		}
		return strings.ReplaceAll(rawURL, c.Key, redacted)
	}
	q := u.Query()
	if q.Has(keyParam) {
		q.Set(keyParam, redacted)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// redact strips the key from a *url.Error, which is what http.Client.Do
// returns and which embeds the full request URL.
func (c *Client) redact(err error) error {
	ue, ok := err.(*url.Error)
	if !ok {
		return err
	}
	cp := *ue
	cp.URL = c.redactURL(ue.URL)
	return &cp
}
