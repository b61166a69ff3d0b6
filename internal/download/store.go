package download

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hirepanel/internal/export"
)

const (
	// DirEnv is the env var override for the download directory.
	DirEnv = "HIREPANEL_DOWNLOAD_DIR"
	// DefaultDir is the download directory relative to the user's home.
	DefaultDir = "Downloads/hirepanel"
)

// Store writes produced files into one download directory.
// Layout: <dir>/<file name>. A file with the same name is overwritten.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at dir, or at $HIREPANEL_DOWNLOAD_DIR,
// or at ~/Downloads/hirepanel, whichever is set first.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.Getenv(DirEnv)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, DefaultDir)
	}
	return &Store{baseDir: dir}, nil
}

// BaseDir returns the download directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Path returns where a file named name would be written.
func (s *Store) Path(name string) string {
	// Only the base name is kept so a record's upload name cannot escape the dir.
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == ".." || base == "/" {
		base = "download"
	}
	return filepath.Join(s.baseDir, base)
}

// Save writes f and returns its path.
func (s *Store) Save(f export.File) (string, error) {
	if f.Name == "" {
		return "", fmt.Errorf("save download: empty file name")
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := s.Path(f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
