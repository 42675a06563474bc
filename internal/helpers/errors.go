package helpers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrScriptFilenameUnavailable indicates the runtime caller path could not be resolved.
var ErrScriptFilenameUnavailable = errors.New("failed to get script filename")

// WasRunFromSrc checks if the binary was run from a Go build temp directory.
func WasRunFromSrc() bool {
	buildPath := filepath.Join(os.TempDir(), "go-build")
	return strings.HasPrefix(os.Args[0], buildPath)
}

// GetScriptDir returns the directory of the running binary. Helper programs
// shipped inside the action bundle live next to it.
func GetScriptDir() (string, error) {
	if WasRunFromSrc() {
		_, fname, _, ok := runtime.Caller(0)
		if !ok {
			return "", ErrScriptFilenameUnavailable
		}
		return filepath.Dir(fname), nil
	}
	fname, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Dir(fname), nil
}
