// Package action routes launcher invocations to the GIPHY flows and renders
// their results.
package action

import (
	"context"

	"github.com/jmagar/giphy-launchbar/internal/cache"
	"github.com/jmagar/giphy-launchbar/internal/model"
)

// GifAPI is the subset of the GIPHY client used by the actions.
type GifAPI interface {
	Trending(ctx context.Context, page int) ([]model.GifItem, error)
	Search(ctx context.Context, keyword string, page int) ([]model.GifItem, error)
	GetByID(ctx context.Context, id string) (*model.GifItem, error)
}

// ImageCache stores downloaded renditions.
type ImageCache interface {
	Download(ctx context.Context, id, url string) (string, error)
	Clean(ctx context.Context) (int, error)
	Info(ctx context.Context) (cache.Info, error)
	ImagesDir() string
}

// Copier places an image file on the clipboard.
type Copier interface {
	CopyImage(ctx context.Context, path string) error
}

// Guard rejects an invocation superseded by a newer one.
type Guard interface {
	Allow(ctx context.Context) (bool, error)
}

// Env carries everything one invocation needs. Copier and Throttle may be
// nil; SetClipboard then fails and Run is never throttled.
type Env struct {
	API        GifAPI
	Cache      ImageCache
	Copier     Copier
	Throttle   Guard
	Prefs      *model.Preferences
	CommandKey bool

	// SaveKey persists a new API key. Nil keeps the key in memory only.
	SaveKey func(key string) error

	// PreviewConcurrency bounds preview downloads per page; zero uses the default.
	PreviewConcurrency int
}
