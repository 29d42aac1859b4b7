package monitor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ErrPersist marks failures to write the list file.
var ErrPersist = errors.New("failed to persist monitored list")

// Write replaces the file at path with data. The content is written to a
// temporary file in the same directory and renamed over the target, so a
// failed write leaves the previous list untouched.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := renameio.WriteFile(path, data, 0o644, renameio.WithTempDir(dir)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
