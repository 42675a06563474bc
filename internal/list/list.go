package list

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jmagar/giphy-launchbar/internal/model"
)

// PreviewLabel marks the first row of a result page.
const PreviewLabel = "⌘ + Y to Preview"

// GifItems maps API items to rows in API order. Preview images are fetched
// concurrently; a failed preview leaves the row with a generic icon.
func GifItems(ctx context.Context, deps Deps, items []model.GifItem) []model.ListItem {
	out := make([]model.ListItem, len(items))

	var g errgroup.Group
	g.SetLimit(deps.concurrency())
	for i := range items {
		g.Go(func() error {
			out[i] = gifItem(ctx, deps, &items[i])
			return nil
		})
	}
	_ = g.Wait()

	if len(out) > 0 {
		out[0].Label = PreviewLabel
	}
	return out
}

func gifItem(ctx context.Context, deps Deps, g *model.GifItem) model.ListItem {
	title := g.Title
	if strings.TrimSpace(title) == "" {
		title = g.ID
	}
	item := model.ListItem{
		Title:              title,
		Icon:               model.IconImage,
		Badge:              strings.ToUpper(g.Type),
		URL:                g.URL,
		Action:             model.ActionShowDetail,
		ActionArgument:     detailArgument(g),
		ActionReturnsItems: true,
	}

	img, ok := g.Image(model.PreviewVariant)
	if !ok || img.URL == "" || deps.Preview == nil {
		return item
	}
	path, err := deps.Preview(ctx, g.ID, img.URL)
	if err != nil || path == "" {
		return item
	}
	item.Icon = path
	item.QuickLookURL = FileURL(path)
	return item
}

// detailArgument is the value round-tripped to ShowDetail: the item exactly
// as the API sent it.
func detailArgument(g *model.GifItem) any {
	if len(g.Raw) > 0 {
		return g.Raw
	}
	return g
}

// FileURL returns a file:// URL for a local path.
func FileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: path}).String()
}

// Trending renders one trending page. page is 1-based.
func Trending(ctx context.Context, deps Deps, items []model.GifItem, page int) []model.ListItem {
	out := GifItems(ctx, deps, items)
	if len(items) == model.PageSize {
		out = append(out, More(model.ActionListTrending, strconv.Itoa(page+1)))
	}
	return out
}

// Search renders one page of search results. page is 0-based.
func Search(ctx context.Context, deps Deps, items []model.GifItem, keyword string, page int) []model.ListItem {
	out := GifItems(ctx, deps, items)
	switch len(items) {
	case 0:
		out = append(out, NoData())
	case model.PageSize:
		out = append(out, More(model.ActionSearch, fmt.Sprintf("%s:%d", keyword, page+1)))
	}
	return out
}

// More re-invokes action with the next page token.
func More(action, next string) model.ListItem {
	return model.ListItem{
		Title:          "More...",
		Icon:           model.IconMore,
		Action:         action,
		ActionArgument: next,
	}
}

// NoData is shown for a search without results.
func NoData() model.ListItem {
	return model.ListItem{Title: "No Data", Icon: model.IconInfo}
}

// NoGifFound is shown when a response carries no data payload.
func NoGifFound() model.ListItem {
	return model.ListItem{Title: "No Gif was found", Icon: model.IconSneeze}
}

// NoURLFound is shown for a URL that is not a GIPHY page.
func NoURLFound() model.ListItem {
	return model.ListItem{Title: "No Giphy URL was found", Icon: model.IconNotFound}
}

// SetKeyPrompt offers to store argument as the API key.
func SetKeyPrompt(argument string) model.ListItem {
	return model.ListItem{
		Title:          "Set GIPHY Key",
		Icon:           model.IconSettings,
		Action:         model.ActionSetKey,
		ActionArgument: argument,
	}
}

// RequestFailed reports an error as a single row.
func RequestFailed(err error) model.ListItem {
	return model.ListItem{
		Title:               "Request failed",
		Subtitle:            err.Error(),
		Icon:                model.IconWarning,
		AlwaysShowsSubtitle: true,
	}
}
