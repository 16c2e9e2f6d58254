package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/transkeeper/internal/filex"
)

// saveFile writes data as name inside the output directory and returns the
// resulting path.
func (a *App) saveFile(name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(a.config.OutputDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return "", fmt.Errorf("error saving %s: %w", name, err)
	}
	return path, nil
}
