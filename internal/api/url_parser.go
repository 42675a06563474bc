package api

import (
	"net/url"
	"regexp"
	"strings"
)

// Index of the pattern that matched in CheckURL.
const (
	URLTypePage  = 0 // https://giphy.com/gifs/<slug>-<id>
	URLTypeMedia = 1 // https://media2.giphy.com/media/<id>/giphy.gif
	URLTypeShort = 2 // https://i.giphy.com/<id>.gif
)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://giphy\.com/gifs/.*?([^-?#&/]*)$`),
	regexp.MustCompile(`^https://media\d*\.giphy\.com/media/(?:v1\.[^/]+/)?([A-Za-z0-9]+)/[^/]+$`),
	regexp.MustCompile(`^https://i\.giphy\.com/([A-Za-z0-9]+)\.(?:gif|webp|mp4)$`),
}

// CheckURL extracts the GIF id from a giphy.com URL. Query string, fragment
// and a trailing slash are ignored. Returns ("", -1) if no pattern matches
// or the extracted id is empty.
func CheckURL(rawURL string) (string, int) {
	target := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		u.RawQuery = ""
		u.ForceQuery = false
		u.Fragment = ""
		u.RawFragment = ""
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
		target = u.String()
	}
	for i, re := range urlPatterns {
		match := re.FindStringSubmatch(target)
		if match != nil && match[1] != "" {
			return match[1], i
		}
	}
	return "", -1
}
