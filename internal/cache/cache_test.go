package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jmagar/giphy-launchbar/internal/ui"
)

// countingFetcher serves fixed bytes and counts how often it was called.
type countingFetcher struct {
	calls atomic.Int32
	data  []byte
	err   error
}

func (f *countingFetcher) GetData(_ context.Context, _ string) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func openStore(t *testing.T, f Fetcher) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), f)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPathFor_Deterministic(t *testing.T) {
	url := "https://media1.giphy.com/media/ID123/giphy-preview.gif?cid=abc&rid=giphy-preview.gif"
	a := PathFor("/tmp/c", "ID123", url)
	b := PathFor("/tmp/c", "ID123", url)
	if a != b {
		t.Fatalf("PathFor not deterministic: %q vs %q", a, b)
	}
	want := filepath.Join("/tmp/c", "images", "ID123giphy-preview.gif")
	if a != want {
		t.Fatalf("PathFor() = %q, want %q", a, want)
	}
	if other := PathFor("/tmp/c", "ID123", "https://media1.giphy.com/media/ID123/giphy.gif"); other == a {
		t.Fatal("different renditions must map to different paths")
	}
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "https://media.giphy.com/media/x/200w.gif", want: "200w.gif"},
		{in: "https://media.giphy.com/media/x/giphy.mp4?cid=1#frag", want: "giphy.mp4"},
		{in: "plainname.gif", want: "plainname.gif"},
	}
	for _, tt := range tests {
		if got := FilenameFromURL(tt.in); got != tt.want {
			t.Errorf("FilenameFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDownload_FetchesOnce(t *testing.T) {
	f := &countingFetcher{data: []byte("GIF89a")}
	s := openStore(t, f)
	ctx := context.Background()
	url := "https://media.giphy.com/media/abc/giphy.gif"

	first, err := s.Download(ctx, "abc", url)
	if err != nil {
		t.Fatalf("first Download() error = %v", err)
	}
	second, err := s.Download(ctx, "abc", url)
	if err != nil {
		t.Fatalf("second Download() error = %v", err)
	}
	if first != second {
		t.Fatalf("paths differ: %q vs %q", first, second)
	}
	if got := f.calls.Load(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1", got)
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(data) != "GIF89a" {
		t.Fatalf("cached content = %q", data)
	}

	entry, err := s.index.Lookup(ctx, "abc", filepath.Base(first))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if entry == nil || entry.Size != 6 || entry.SourceURL != url {
		t.Fatalf("unexpected index entry: %+v", entry)
	}
}

func TestDownload_ConcurrentCallersShareFetch(t *testing.T) {
	f := &countingFetcher{data: []byte("GIF89a")}
	s := openStore(t, f)
	url := "https://media.giphy.com/media/abc/giphy.gif"

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Download(context.Background(), "abc", url); err != nil {
				t.Errorf("Download() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := f.calls.Load(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1", got)
	}
}

func TestDownload_ExistingFileSkipsNetwork(t *testing.T) {
	f := &countingFetcher{err: errors.New("network disabled")}
	s := openStore(t, f)
	url := "https://media.giphy.com/media/abc/giphy.gif"

	dist := PathFor(s.dir, "abc", url)
	if err := os.WriteFile(dist, []byte("cached"), 0644); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	got, err := s.Download(context.Background(), "abc", url)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if got != dist {
		t.Fatalf("Download() = %q, want %q", got, dist)
	}
	if f.calls.Load() != 0 {
		t.Fatal("fetcher called for a cached file")
	}

	entry, err := s.index.Lookup(context.Background(), "abc", filepath.Base(dist))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if entry == nil || entry.Size != int64(len("cached")) {
		t.Fatalf("existing file not indexed: %+v", entry)
	}
}

func TestDownload_IndexFailureWarns(t *testing.T) {
	var buf bytes.Buffer
	orig := ui.Stderr
	ui.Stderr = &buf
	t.Cleanup(func() { ui.Stderr = orig })

	f := &countingFetcher{data: []byte("GIF89a")}
	s := openStore(t, f)
	if err := s.index.Close(); err != nil {
		t.Fatalf("close index: %v", err)
	}

	got, err := s.Download(context.Background(), "abc", "https://media.giphy.com/media/abc/giphy.gif")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if ok, _ := fileExists(got); !ok {
		t.Fatal("file not written when the index failed")
	}
	if !strings.Contains(buf.String(), "Cache index not updated") {
		t.Fatalf("stderr = %q, want index warning", buf.String())
	}
}

func TestDownload_FetchErrorLeavesNoFile(t *testing.T) {
	f := &countingFetcher{err: errors.New("boom")}
	s := openStore(t, f)
	url := "https://media.giphy.com/media/abc/giphy.gif"

	if _, err := s.Download(context.Background(), "abc", url); err == nil {
		t.Fatal("expected error")
	}
	if ok, _ := fileExists(PathFor(s.dir, "abc", url)); ok {
		t.Fatal("failed download left a file behind")
	}
}

func TestCleanAndInfo(t *testing.T) {
	f := &countingFetcher{data: []byte("0123456789")}
	s := openStore(t, f)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := s.Download(ctx, id, "https://media.giphy.com/media/"+id+"/giphy.gif"); err != nil {
			t.Fatalf("Download(%s) error = %v", id, err)
		}
	}

	info, err := s.Info(ctx)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Entries != 3 || info.Bytes != 30 {
		t.Fatalf("Info() = %+v, want 3 entries / 30 bytes", info)
	}
	if !strings.HasPrefix(info.String(), "3 images, 30 B") {
		t.Fatalf("Info.String() = %q", info.String())
	}

	removed, err := s.Clean(ctx)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if removed != 3 {
		t.Fatalf("Clean() removed %d, want 3", removed)
	}
	entries, _ := os.ReadDir(s.ImagesDir())
	if len(entries) != 0 {
		t.Fatalf("images dir still has %d entries", len(entries))
	}
	info, _ = s.Info(ctx)
	if info.Entries != 0 || info.String() != "Empty" {
		t.Fatalf("Info() after Clean = %+v", info)
	}

	// A cleaned entry is downloaded again.
	if _, err := s.Download(ctx, "a", "https://media.giphy.com/media/a/giphy.gif"); err != nil {
		t.Fatalf("Download after Clean: %v", err)
	}
	if got := f.calls.Load(); got != 4 {
		t.Fatalf("fetch calls = %d, want 4", got)
	}
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
