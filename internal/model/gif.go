package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Image is one rendition of a GIF. GIPHY sends the numeric fields as
// decimal strings.
type Image struct {
	URL    string `json:"url,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
	Size   string `json:"size,omitempty"`
	MP4    string `json:"mp4,omitempty"`
	WebP   string `json:"webp,omitempty"`
}

// SizeBytes returns Size as an integer, or 0 if it is absent or malformed.
func (i Image) SizeBytes() uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(i.Size), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Usable reports whether the rendition can be listed and copied.
func (i Image) Usable() bool {
	return i.URL != "" && i.Width != "" && i.Size != ""
}

// GifItem is a single GIF object as returned by the API.
type GifItem struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Type     string           `json:"type"`
	Rating   string           `json:"rating"`
	URL      string           `json:"url"`
	Username string           `json:"username,omitempty"`
	Source   string           `json:"source,omitempty"`
	Images   map[string]Image `json:"images"`

	// Raw is the undecoded API object, kept so the detail dump can show
	// fields this struct does not model.
	Raw json.RawMessage `json:"-"`
}

// Image returns the named rendition and whether it exists.
func (g *GifItem) Image(name string) (Image, bool) {
	if g == nil || g.Images == nil {
		return Image{}, false
	}
	img, ok := g.Images[name]
	return img, ok
}

// Pagination mirrors the API pagination object.
type Pagination struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
	Offset     int `json:"offset"`
}

// Meta mirrors the API meta object.
type Meta struct {
	Status     int    `json:"status"`
	Msg        string `json:"msg"`
	ResponseID string `json:"response_id"`
}

// ListResponse is the envelope of the trending and search endpoints.
// Data holds undecoded items so each can keep its raw form.
type ListResponse struct {
	Data       []json.RawMessage `json:"data"`
	Pagination Pagination        `json:"pagination"`
	Meta       Meta              `json:"meta"`
}

// ItemResponse is the envelope of the get-by-id endpoint.
type ItemResponse struct {
	Data json.RawMessage `json:"data"`
	Meta Meta            `json:"meta"`
}

// ClipboardRequest is the argument of the SetClipboard action.
type ClipboardRequest struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// CacheEntry records one downloaded file.
type CacheEntry struct {
	ID        string
	Filename  string
	Path      string
	SourceURL string
	Size      int64
	FetchedAt time.Time
}
