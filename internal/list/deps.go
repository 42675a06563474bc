// Package list renders GIPHY results as launcher list items.
package list

import "context"

// Deps holds callbacks to functions that live outside this package.
type Deps struct {
	// Preview downloads an image rendition into the cache and returns the
	// local file path. A nil Preview renders rows with a generic icon.
	Preview func(ctx context.Context, id, url string) (string, error)

	// PreviewConcurrency bounds parallel preview downloads for one page.
	// Zero means DefaultPreviewConcurrency.
	PreviewConcurrency int
}

// DefaultPreviewConcurrency is the number of previews fetched at once.
const DefaultPreviewConcurrency = 4

func (d Deps) concurrency() int {
	if d.PreviewConcurrency > 0 {
		return d.PreviewConcurrency
	}
	return DefaultPreviewConcurrency
}
