package generator

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrOutOfDate is returned in check mode when a target file is missing or differs
// from what would be generated.
var ErrOutOfDate = errors.New("generated file is out of date")

// WriteOptions controls WriteFile.
type WriteOptions struct {
	// Check compares instead of writing.
	Check bool
}

// WriteFile replaces path with data through a temporary file. It reports whether
// the file changed; identical content is left untouched.
func WriteFile(path string, data []byte, opt WriteOptions) (wrote bool, err error) {
	existing, readErr := os.ReadFile(path)
	switch {
	case readErr == nil && bytes.Equal(existing, data):
		return false, nil
	case readErr != nil && !os.IsNotExist(readErr):
		return false, fmt.Errorf("read existing: %w", readErr)
	}

	if opt.Check {
		if readErr != nil {
			return false, fmt.Errorf("%w: %s does not exist", ErrOutOfDate, path)
		}
		return false, fmt.Errorf("%w: %s differs", ErrOutOfDate, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("mkdir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("rename tmp: %w", err)
	}
	return true, nil
}
