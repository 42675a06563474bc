package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmagar/giphy-launchbar/internal/api"
	"github.com/jmagar/giphy-launchbar/internal/clipboard"
	"github.com/jmagar/giphy-launchbar/internal/list"
	"github.com/jmagar/giphy-launchbar/internal/model"
	"github.com/jmagar/giphy-launchbar/internal/ui"
)

func empty() []model.ListItem { return []model.ListItem{} }

func (e *Env) listDeps() list.Deps {
	deps := list.Deps{PreviewConcurrency: e.PreviewConcurrency}
	if e.Cache != nil {
		deps.Preview = e.Cache.Download
	}
	return deps
}

// Run handles the text typed into the launcher.
func (e *Env) Run(ctx context.Context, argument string) ([]model.ListItem, error) {
	if e.Throttle != nil {
		ok, err := e.Throttle.Allow(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			ui.PrintWarning(fmt.Sprintf("throttle unavailable: %v", err))
		} else if !ok {
			return empty(), nil
		}
	}

	argument = strings.TrimSpace(argument)
	if argument == "" {
		if e.CommandKey {
			return e.ListSettings(ctx)
		}
		return e.ListTrending(ctx, "")
	}
	if !e.Prefs.HasKey() {
		return []model.ListItem{list.SetKeyPrompt(argument)}, nil
	}
	return e.Search(ctx, argument)
}

// RunWithURL shows the detail view of the GIF behind a GIPHY URL.
func (e *Env) RunWithURL(ctx context.Context, rawURL string) ([]model.ListItem, error) {
	id, kind := api.CheckURL(rawURL)
	if kind < 0 {
		return []model.ListItem{list.NoURLFound()}, nil
	}
	item, err := e.API.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrEmptyResponse) {
			return []model.ListItem{list.NoGifFound()}, nil
		}
		return nil, err
	}
	return list.Detail(item, e.CommandKey), nil
}

// ListTrending lists one page of trending GIFs. argument is the 1-based page.
func (e *Env) ListTrending(ctx context.Context, argument string) ([]model.ListItem, error) {
	page := ParseTrendingPage(argument)
	items, err := e.API.Trending(ctx, page)
	if err != nil {
		if errors.Is(err, api.ErrEmptyResponse) {
			return []model.ListItem{list.NoGifFound()}, nil
		}
		return nil, err
	}
	return list.Trending(ctx, e.listDeps(), items, page), nil
}

// Search lists one page of results for "keyword" or "keyword:page". Without
// a stored key it offers the argument as the key instead.
func (e *Env) Search(ctx context.Context, argument string) ([]model.ListItem, error) {
	if !e.Prefs.HasKey() {
		return []model.ListItem{list.SetKeyPrompt(argument)}, nil
	}
	keyword, page := ParseSearchArgument(argument)
	items, err := e.API.Search(ctx, keyword, page)
	if err != nil {
		if errors.Is(err, api.ErrEmptyResponse) {
			return []model.ListItem{list.NoGifFound()}, nil
		}
		return nil, err
	}
	return list.Search(ctx, e.listDeps(), items, keyword, page), nil
}

// ShowDetail renders the item carried in argument as raw API JSON.
func (e *Env) ShowDetail(ctx context.Context, argument string) ([]model.ListItem, error) {
	raw := []byte(strings.TrimSpace(argument))
	var item model.GifItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("invalid detail argument: %w", err)
	}
	item.Raw = raw
	return list.Detail(&item, e.CommandKey), nil
}

// SetClipboard downloads the rendition in argument and copies it.
func (e *Env) SetClipboard(ctx context.Context, argument string) ([]model.ListItem, error) {
	var req model.ClipboardRequest
	if err := json.Unmarshal([]byte(argument), &req); err != nil {
		return nil, fmt.Errorf("invalid clipboard argument: %w", err)
	}
	if req.URL == "" {
		return nil, errors.New("clipboard argument has no url")
	}
	path, err := e.Cache.Download(ctx, req.ID, req.URL)
	if err != nil {
		return nil, err
	}
	if e.Copier == nil {
		return nil, clipboard.ErrHelperNotFound
	}
	if err := e.Copier.CopyImage(ctx, path); err != nil {
		return nil, err
	}
	return []model.ListItem{{Path: path}}, nil
}

// SetKey stores argument as the API key; an empty argument removes it.
func (e *Env) SetKey(ctx context.Context, argument string) ([]model.ListItem, error) {
	key := strings.TrimSpace(argument)
	if e.SaveKey != nil {
		if err := e.SaveKey(key); err != nil {
			return nil, err
		}
	}
	if e.Prefs != nil {
		e.Prefs.Key = key
	}
	if key == "" {
		ui.PrintInfo("GIPHY API key removed")
	} else {
		ui.PrintInfo("GIPHY API key saved")
	}
	return empty(), nil
}

// CleanCache deletes every cached image.
func (e *Env) CleanCache(ctx context.Context) ([]model.ListItem, error) {
	n, err := e.Cache.Clean(ctx)
	if err != nil {
		return nil, err
	}
	ui.PrintSuccess(fmt.Sprintf("Removed %d cached images", n))
	return empty(), nil
}

// ListSettings lists the maintenance actions.
func (e *Env) ListSettings(ctx context.Context) ([]model.ListItem, error) {
	summary := "Cache info unavailable"
	if info, err := e.Cache.Info(ctx); err == nil {
		summary = info.String()
	}
	return list.Settings(e.Cache.ImagesDir(), summary), nil
}

// Dispatch invokes a named action.
func (e *Env) Dispatch(ctx context.Context, name, argument string) ([]model.ListItem, error) {
	switch name {
	case model.ActionListTrending:
		return e.ListTrending(ctx, argument)
	case model.ActionSearch:
		return e.Search(ctx, argument)
	case model.ActionShowDetail:
		return e.ShowDetail(ctx, argument)
	case model.ActionSetClipboard:
		return e.SetClipboard(ctx, argument)
	case model.ActionSetKey:
		return e.SetKey(ctx, argument)
	case model.ActionCleanCache:
		return e.CleanCache(ctx)
	case model.ActionListSettings:
		return e.ListSettings(ctx)
	}
	return nil, fmt.Errorf("%w: %q", model.ErrUnknownAction, name)
}

// ErrorItems renders err as the single row shown in place of results.
func ErrorItems(err error) []model.ListItem {
	return []model.ListItem{list.RequestFailed(err)}
}
