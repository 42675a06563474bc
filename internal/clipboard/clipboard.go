// Package clipboard copies image files to the system clipboard through an
// external helper program bundled with the action.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jmagar/giphy-launchbar/internal/helpers"
)

// HelperName is the program looked up next to the binary and on PATH.
const HelperName = "copy-image"

// ErrHelperNotFound is returned when no copy helper can be located.
var ErrHelperNotFound = errors.New("clipboard helper not found")

// ResolveHelper locates the copy helper. An explicitly configured path must
// exist; otherwise the binary's own directory is checked before PATH.
func ResolveHelper(configured string) (string, error) {
	preferred := strings.TrimSpace(configured)
	if preferred != "" && preferred != HelperName {
		if resolved, err := exec.LookPath(preferred); err == nil {
			return resolved, nil
		}
		if info, err := os.Stat(preferred); err == nil && !info.IsDir() {
			return preferred, nil
		}
		return "", fmt.Errorf("%w: configured helper %s", ErrHelperNotFound, preferred)
	}

	if dir, err := helpers.GetScriptDir(); err == nil {
		candidate := filepath.Join(dir, HelperName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	if resolved, err := exec.LookPath(HelperName); err == nil {
		return resolved, nil
	}
	return "", fmt.Errorf("%w (checked action directory and PATH)", ErrHelperNotFound)
}

// Copier runs the helper. The command constructor is a field so tests can
// substitute it.
type Copier struct {
	Helper string

	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewCopier returns a Copier for the helper at path.
func NewCopier(path string) *Copier {
	return &Copier{
		Helper:         path,
		commandContext: exec.CommandContext,
	}
}

// CopyImage places the image at path on the clipboard.
func (c *Copier) CopyImage(ctx context.Context, path string) error {
	if c == nil || c.Helper == "" {
		return ErrHelperNotFound
	}
	if err := helpers.ValidatePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	cmd := c.commandContext(ctx, c.Helper, path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", filepath.Base(c.Helper), err, msg)
		}
		return fmt.Errorf("%s failed: %w", filepath.Base(c.Helper), err)
	}
	return nil
}
