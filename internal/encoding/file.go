package encoding

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir ensures the parent directory of a file path exists.
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}
