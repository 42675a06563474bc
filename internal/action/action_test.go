package action

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jmagar/giphy-launchbar/internal/api"
	"github.com/jmagar/giphy-launchbar/internal/cache"
	"github.com/jmagar/giphy-launchbar/internal/model"
	"github.com/jmagar/giphy-launchbar/internal/ui"
)

type fakeAPI struct {
	trendingPages []int
	searches      []string
	items         []model.GifItem
	byID          map[string]*model.GifItem
	err           error
}

func (f *fakeAPI) Trending(ctx context.Context, page int) ([]model.GifItem, error) {
	f.trendingPages = append(f.trendingPages, page)
	return f.items, f.err
}

func (f *fakeAPI) Search(ctx context.Context, keyword string, page int) ([]model.GifItem, error) {
	f.searches = append(f.searches, fmt.Sprintf("%s:%d", keyword, page))
	return f.items, f.err
}

func (f *fakeAPI) GetByID(ctx context.Context, id string) (*model.GifItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.byID[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return item, nil
}

type fakeCache struct {
	downloads []string
	cleaned   bool
}

func (f *fakeCache) Download(ctx context.Context, id, url string) (string, error) {
	f.downloads = append(f.downloads, id+" "+url)
	return "/cache/images/" + id + ".gif", nil
}

func (f *fakeCache) Clean(ctx context.Context) (int, error) {
	f.cleaned = true
	return 2, nil
}

func (f *fakeCache) Info(ctx context.Context) (cache.Info, error) {
	return cache.Info{Entries: 2, Bytes: 2048}, nil
}

func (f *fakeCache) ImagesDir() string { return "/cache/images" }

type fakeCopier struct{ paths []string }

func (f *fakeCopier) CopyImage(ctx context.Context, path string) error {
	f.paths = append(f.paths, path)
	return nil
}

type fakeGuard struct{ allow bool }

func (f fakeGuard) Allow(ctx context.Context) (bool, error) { return f.allow, nil }

func newEnv(key string) (*Env, *fakeAPI, *fakeCache) {
	a := &fakeAPI{byID: map[string]*model.GifItem{}}
	c := &fakeCache{}
	return &Env{API: a, Cache: c, Prefs: &model.Preferences{Key: key}}, a, c
}

func quietStderr(t *testing.T) {
	t.Helper()
	orig := ui.Stderr
	ui.Stderr = &bytes.Buffer{}
	t.Cleanup(func() { ui.Stderr = orig })
}

func TestRun_NoKeyPromptsForKey(t *testing.T) {
	env, a, _ := newEnv("")
	out, err := env.Run(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("rows = %d, want 1", len(out))
	}
	if out[0].Title != "Set GIPHY Key" || out[0].Action != model.ActionSetKey || out[0].ActionArgument != "dQw4w9WgXcQ" {
		t.Fatalf("row = %+v", out[0])
	}
	if len(a.searches) != 0 {
		t.Fatal("search must not run without a key")
	}
}

func TestRun_Routing(t *testing.T) {
	tests := []struct {
		name         string
		argument     string
		commandKey   bool
		wantTrending []int
		wantSearch   []string
		wantFirst    string
	}{
		{"empty lists trending", "", false, []int{1}, nil, ""},
		{"command key lists settings", "", true, nil, nil, "Remove saved API key"},
		{"text searches", "cats", false, nil, []string{"cats:0"}, ""},
		{"paged search", "cats:3", false, nil, []string{"cats:3"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, a, _ := newEnv("key")
			env.CommandKey = tt.commandKey
			out, err := env.Run(context.Background(), tt.argument)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if fmt.Sprint(a.trendingPages) != fmt.Sprint(tt.wantTrending) {
				t.Fatalf("trending pages = %v, want %v", a.trendingPages, tt.wantTrending)
			}
			if fmt.Sprint(a.searches) != fmt.Sprint(tt.wantSearch) {
				t.Fatalf("searches = %v, want %v", a.searches, tt.wantSearch)
			}
			if tt.wantFirst != "" && (len(out) == 0 || out[0].Title != tt.wantFirst) {
				t.Fatalf("first row = %+v, want %q", out, tt.wantFirst)
			}
		})
	}
}

func TestRun_ThrottledReturnsEmpty(t *testing.T) {
	env, a, _ := newEnv("key")
	env.Throttle = fakeGuard{allow: false}
	out, err := env.Run(context.Background(), "cats")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("out = %#v, want empty non-nil list", out)
	}
	if len(a.searches) != 0 || len(a.trendingPages) != 0 {
		t.Fatal("throttled call must not reach the API")
	}
}

func TestRun_EmptyResponseIsInformational(t *testing.T) {
	env, a, _ := newEnv("key")
	a.err = fmt.Errorf("%w (trending: status 401)", api.ErrEmptyResponse)
	out, err := env.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 1 || out[0].Title != "No Gif was found" || out[0].Icon != model.IconSneeze {
		t.Fatalf("out = %+v", out)
	}
}

func TestRun_NetworkErrorPropagates(t *testing.T) {
	env, a, _ := newEnv("key")
	a.err = errors.New("dial tcp: connection refused")
	if _, err := env.Run(context.Background(), "cats"); err == nil {
		t.Fatal("expected error")
	}
	rows := ErrorItems(a.err)
	if len(rows) != 1 || rows[0].Title != "Request failed" || rows[0].Subtitle != a.err.Error() {
		t.Fatalf("ErrorItems() = %+v", rows)
	}
}

func TestRunWithURL(t *testing.T) {
	env, a, _ := newEnv("key")
	a.byID["ID123"] = &model.GifItem{
		ID: "ID123",
		Images: map[string]model.Image{
			"downsized": {URL: "https://m/d.gif", Width: "1", Height: "1", Size: "10"},
		},
	}

	out, err := env.RunWithURL(context.Background(), "https://giphy.com/gifs/funny-cat-ID123")
	if err != nil {
		t.Fatalf("RunWithURL() error = %v", err)
	}
	if len(out) != 2 || out[0].Title != "Copy downsized to Clipboard" {
		t.Fatalf("out = %+v", out)
	}

	out, _ = env.RunWithURL(context.Background(), "https://example.com/cat.gif")
	if len(out) != 1 || out[0].Title != "No Giphy URL was found" || out[0].Icon != model.IconNotFound {
		t.Fatalf("non giphy out = %+v", out)
	}

	out, err = env.RunWithURL(context.Background(), "https://giphy.com/gifs/unknown-NOPE")
	if err != nil {
		t.Fatalf("RunWithURL(unknown) error = %v", err)
	}
	if len(out) != 1 || out[0].Title != "No Gif was found" {
		t.Fatalf("unknown id out = %+v", out)
	}
}

func TestShowDetail_DumpWithCommandKey(t *testing.T) {
	env, _, _ := newEnv("key")
	env.CommandKey = true
	out, err := env.ShowDetail(context.Background(), `{"id":"a","title":"t","images":{}}`)
	if err != nil {
		t.Fatalf("ShowDetail() error = %v", err)
	}
	if len(out) != 3 || out[0].Title != "id" || out[2].Badge != "Object" {
		t.Fatalf("out = %+v", out)
	}

	if _, err := env.ShowDetail(context.Background(), "not json"); err == nil {
		t.Fatal("expected error for malformed argument")
	}
}

func TestSetClipboard(t *testing.T) {
	env, _, c := newEnv("key")
	cp := &fakeCopier{}
	env.Copier = cp

	out, err := env.Dispatch(context.Background(), model.ActionSetClipboard, `{"url":"https://m/d.gif","id":"abc"}`)
	if err != nil {
		t.Fatalf("SetClipboard error = %v", err)
	}
	if len(out) != 1 || out[0].Path != "/cache/images/abc.gif" {
		t.Fatalf("out = %+v", out)
	}
	if len(cp.paths) != 1 || cp.paths[0] != "/cache/images/abc.gif" {
		t.Fatalf("copied = %v", cp.paths)
	}
	if len(c.downloads) != 1 || c.downloads[0] != "abc https://m/d.gif" {
		t.Fatalf("downloads = %v", c.downloads)
	}
}

func TestSetKey(t *testing.T) {
	env, _, _ := newEnv("old")
	var saved []string
	env.SaveKey = func(key string) error {
		saved = append(saved, key)
		return nil
	}

	out, err := env.Dispatch(context.Background(), model.ActionSetKey, " new ")
	if err != nil {
		t.Fatalf("SetKey error = %v", err)
	}
	if len(out) != 0 || env.Prefs.Key != "new" {
		t.Fatalf("out = %+v key = %q", out, env.Prefs.Key)
	}
	if _, err := env.Dispatch(context.Background(), model.ActionSetKey, ""); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(saved) != "[new ]" || env.Prefs.HasKey() {
		t.Fatalf("saved = %q key = %q", saved, env.Prefs.Key)
	}
}

func TestCleanCacheAndSettings(t *testing.T) {
	quietStderr(t)
	env, _, c := newEnv("key")

	if _, err := env.Dispatch(context.Background(), model.ActionCleanCache, ""); err != nil {
		t.Fatal(err)
	}
	if !c.cleaned {
		t.Fatal("cache not cleaned")
	}

	out, err := env.Dispatch(context.Background(), model.ActionListSettings, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1].Children[0].Path != "/cache/images" {
		t.Fatalf("settings = %+v", out)
	}
	if out[1].Subtitle != (cache.Info{Entries: 2, Bytes: 2048}).String() {
		t.Fatalf("subtitle = %q", out[1].Subtitle)
	}
}

func TestDispatch_Unknown(t *testing.T) {
	env, _, _ := newEnv("key")
	if _, err := env.Dispatch(context.Background(), "Explode", ""); !errors.Is(err, model.ErrUnknownAction) {
		t.Fatalf("error = %v, want ErrUnknownAction", err)
	}
}

func TestSearchAction_RequiresKey(t *testing.T) {
	env, a, _ := newEnv("")
	out, err := env.Dispatch(context.Background(), model.ActionSearch, "cats:1")
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(out) != 1 || out[0].Action != model.ActionSetKey || out[0].ActionArgument != "cats:1" {
		t.Fatalf("want one SetKey item for cats:1, got %+v", out)
	}
	if len(a.searches) != 0 {
		t.Fatalf("API searched without a key: %v", a.searches)
	}
}
