package strategy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Store implements the StrategyStore interface over a single directory
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{
		fs:  fs,
		dir: dir,
	}
}

// Path returns the full path of a strategy file
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether a file with this name is present
func (s *Store) Exists(name string) (bool, error) {
	exists, err := afero.Exists(s.fs, s.Path(name))
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", name, err)
	}
	return exists, nil
}

// Copy duplicates src into dst. A failed copy may leave a partial dst behind.
func (s *Store) Copy(src, dst string) error {
	in, err := s.fs.Open(s.Path(src))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := s.fs.OpenFile(s.Path(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	return nil
}

// Read returns the content of a strategy file
func (s *Store) Read(name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// List returns the strategy config files in the directory, sorted by name
func (s *Store) List() ([]string, error) {
	// Missing directory means nothing has been saved yet
	if exists, err := afero.DirExists(s.fs, s.dir); err != nil || !exists {
		return []string{}, nil
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategies directory %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if HasConfigExtension(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}
