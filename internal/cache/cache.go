package cache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"

	"github.com/jmagar/giphy-launchbar/internal/helpers"
	"github.com/jmagar/giphy-launchbar/internal/model"
	"github.com/jmagar/giphy-launchbar/internal/ui"
)

const (
	imagesDirName = "images"
	indexFileName = "index.db"
)

// Fetcher downloads raw bytes for a URL.
type Fetcher interface {
	GetData(ctx context.Context, rawURL string) ([]byte, error)
}

// Store is the on-disk image cache. Files are never evicted; Clean removes
// everything.
type Store struct {
	dir     string
	fetcher Fetcher
	index   *Index
	group   singleflight.Group
}

// DefaultDir returns the per-user cache directory for the action.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to get cache directory: %w", err)
		}
		base = filepath.Join(homeDir, ".cache")
	}
	return filepath.Join(base, model.AppName), nil
}

// Open prepares dir (creating the images directory) and opens the index.
func Open(dir string, fetcher Fetcher) (*Store, error) {
	if err := helpers.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := helpers.MakeDirs(filepath.Join(dir, imagesDirName)); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	index, err := OpenIndex(filepath.Join(dir, indexFileName))
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, fetcher: fetcher, index: index}, nil
}

// Close releases the index database.
func (s *Store) Close() error {
	return s.index.Close()
}

// ImagesDir returns the directory holding downloaded files.
func (s *Store) ImagesDir() string {
	return filepath.Join(s.dir, imagesDirName)
}

// FilenameFromURL returns the last path segment of rawURL. Query string and
// fragment are dropped and unsafe characters replaced.
func FilenameFromURL(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		name = path.Base(u.Path)
	} else if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		name = rawURL[i+1:]
	}
	return helpers.Sanitise(name)
}

// PathFor returns the deterministic cache path for (id, rawURL):
// {dir}/images/{id}{filename}.
func PathFor(dir, id, rawURL string) string {
	return filepath.Join(dir, imagesDirName, helpers.Sanitise(id)+FilenameFromURL(rawURL))
}

// Download returns the local path of the file for (id, rawURL), fetching it
// only if it is not on disk yet.
func (s *Store) Download(ctx context.Context, id, rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("download: empty url")
	}
	dist := PathFor(s.dir, id, rawURL)
	if ok, err := helpers.FileExists(dist); err != nil {
		return "", err
	} else if ok {
		s.backfill(ctx, id, rawURL, dist)
		return dist, nil
	}

	_, err, _ := s.group.Do(dist, func() (any, error) {
		// Another caller may have finished while we waited on the group.
		if ok, _ := helpers.FileExists(dist); ok {
			return nil, nil
		}
		data, err := s.fetcher.GetData(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", id, err)
		}
		if err := helpers.WriteFileAtomic(dist, data, 0644); err != nil {
			return nil, err
		}
		entry := model.CacheEntry{
			ID:        id,
			Filename:  filepath.Base(dist),
			Path:      dist,
			SourceURL: rawURL,
			Size:      int64(len(data)),
			FetchedAt: time.Now(),
		}
		s.record(ctx, entry)
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	return dist, nil
}

// record writes entry to the index. The file on disk is the source of truth,
// so a failed write only warns.
func (s *Store) record(ctx context.Context, entry model.CacheEntry) {
	if err := s.index.Record(ctx, entry); err != nil {
		ui.PrintWarning(fmt.Sprintf("Cache index not updated for %s: %v", entry.Filename, err))
	}
}

// backfill indexes a file that is on disk but missing from the index, such as
// one written before the index existed.
func (s *Store) backfill(ctx context.Context, id, rawURL, dist string) {
	e, err := s.index.Lookup(ctx, id, filepath.Base(dist))
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("Cache index lookup failed: %v", err))
		return
	}
	if e != nil {
		return
	}
	st, err := os.Stat(dist)
	if err != nil {
		return
	}
	s.record(ctx, model.CacheEntry{
		ID:        id,
		Filename:  filepath.Base(dist),
		Path:      dist,
		SourceURL: rawURL,
		Size:      st.Size(),
		FetchedAt: st.ModTime(),
	})
}

// Clean deletes every file in the images directory and resets the index.
// It returns the number of files removed.
func (s *Store) Clean(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.ImagesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list cache: %w", err)
	}
	removed := 0
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.ImagesDir(), e.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
		removed++
	}
	if err := s.index.Reset(ctx); err != nil {
		return removed, err
	}
	return removed, nil
}

// Info summarises the cache contents.
type Info struct {
	Entries     int
	Bytes       int64
	LastFetched time.Time
}

// String renders the summary for the settings list.
func (i Info) String() string {
	if i.Entries == 0 {
		return "Empty"
	}
	noun := "images"
	if i.Entries == 1 {
		noun = "image"
	}
	s := fmt.Sprintf("%d %s, %s", i.Entries, noun, humanize.Bytes(uint64(i.Bytes)))
	if !i.LastFetched.IsZero() {
		s += ", updated " + humanize.Time(i.LastFetched)
	}
	return s
}

// Info reports what the index knows about cached files.
func (s *Store) Info(ctx context.Context) (Info, error) {
	return s.index.Stats(ctx)
}
