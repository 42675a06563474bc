package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alexflint/go-arg"

	"github.com/jmagar/giphy-launchbar/internal/cache"
	"github.com/jmagar/giphy-launchbar/internal/helpers"
	"github.com/jmagar/giphy-launchbar/internal/model"
	"github.com/jmagar/giphy-launchbar/internal/ui"
)

// PreferencesFileName is the file holding the stored API key.
const PreferencesFileName = "preferences.json"

// DefaultPath returns ~/.config/giphy-launchbar/preferences.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", model.AppName, PreferencesFileName), nil
}

// ReadPreferences loads preferences from path. A missing file yields empty
// preferences, which is the state before the user stores a key.
func ReadPreferences(path string) (*model.Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &model.Preferences{}, nil
		}
		return nil, fmt.Errorf("failed to read preferences at %s: %w", path, err)
	}

	var prefs model.Preferences
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &prefs); err != nil {
			return nil, fmt.Errorf("failed to parse preferences at %s: %w", path, err)
		}
	}

	checkPermissions(path)
	return &prefs, nil
}

// checkPermissions tightens a preferences file readable by others, since it
// holds the API key.
func checkPermissions(path string) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return
	}
	mode := fileInfo.Mode()
	if mode.Perm()&0077 == 0 {
		return
	}
	ui.PrintWarning(fmt.Sprintf("Preferences file has insecure permissions (%04o)", mode.Perm()))
	fmt.Fprintf(ui.Stderr, "   File: %s\n", path)
	fmt.Fprintf(ui.Stderr, "   Risk: it contains your GIPHY API key and should only be readable by you\n")
	if runtime.GOOS == "windows" {
		fmt.Fprintf(ui.Stderr, "   Windows ACLs in use; skipping chmod auto-fix\n\n")
		return
	}
	if chmodErr := os.Chmod(path, 0600); chmodErr != nil {
		fmt.Fprintf(ui.Stderr, "   Auto-fix failed: %v\n", chmodErr)
		fmt.Fprintf(ui.Stderr, "   Fix manually: chmod 600 %s\n\n", path)
		return
	}
	fmt.Fprintf(ui.Stderr, "   Auto-fix applied: chmod 600 %s\n\n", path)
}

// WritePreferences saves prefs to path with owner-only permissions.
func WritePreferences(path string, prefs *model.Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := helpers.MakeDirs(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := helpers.WriteFileAtomic(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences to %s: %w", path, err)
	}
	return nil
}

// ParseArgs parses CLI arguments using go-arg.
func ParseArgs() *model.Args {
	var args model.Args
	arg.MustParse(&args)
	return &args
}

// ParseCfg resolves the runtime configuration from parsed arguments and the
// stored preferences.
//
// The cache directory is taken from --cache-dir (or $GIPHY_LB_CACHE), then
// the cachePath preference, then the per-user cache directory.
func ParseCfg(args *model.Args) (*model.Config, error) {
	prefsPath := strings.TrimSpace(args.Config)
	if prefsPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		prefsPath = p
	}

	prefs, err := ReadPreferences(prefsPath)
	if err != nil {
		return nil, err
	}
	prefs.Key = strings.TrimSpace(prefs.Key)
	prefs.CachePath = strings.TrimSpace(prefs.CachePath)
	if prefs.Rating == "" {
		prefs.Rating = model.DefaultRating
	}
	if prefs.Lang == "" {
		prefs.Lang = model.DefaultLang
	}

	cacheDir := strings.TrimSpace(args.CacheDir)
	if cacheDir == "" {
		cacheDir = prefs.CachePath
	}
	if cacheDir == "" {
		cacheDir, err = cache.DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := helpers.ValidatePath(cacheDir); err != nil {
		return nil, fmt.Errorf("invalid cache directory: %w", err)
	}

	return &model.Config{
		Preferences:     *prefs,
		PreferencesPath: prefsPath,
		CacheDir:        cacheDir,
		CommandKey:      args.CommandKey,
		Pretty:          args.Pretty,
	}, nil
}

// SaveKey stores key in the preferences file, leaving other fields intact.
// An empty key removes the stored one.
func SaveKey(path, key string) error {
	prefs, err := ReadPreferences(path)
	if err != nil {
		return err
	}
	prefs.Key = strings.TrimSpace(key)
	return WritePreferences(path, prefs)
}
