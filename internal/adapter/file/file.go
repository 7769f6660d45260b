// Package file stores each namespace as a single file in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// Slot is a snapshot.Slot writing one file per namespace under Dir.
// Writes go to a temp file that is renamed over the namespace file.
type Slot struct {
	dir string
}

// Open creates the directory if needed and returns a Slot rooted there.
func Open(dir string) (*Slot, error) {
	if dir == "" {
		return nil, errors.New("file: directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("file: create directory %s: %w", dir, err)
	}
	return &Slot{dir: dir}, nil
}

func (s *Slot) path(namespace string) string {
	name := strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(namespace)
	return filepath.Join(s.dir, name+".snapshot")
}

// Get reads the namespace file.
func (s *Slot) Get(_ context.Context, namespace string) ([]byte, error) {
	b, err := os.ReadFile(s.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file: %s: %w", namespace, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("file: read %s: %w", namespace, err)
	}
	return b, nil
}

// Put atomically replaces the namespace file.
func (s *Slot) Put(_ context.Context, namespace string, payload []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("file: create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("file: write %s: %w", namespace, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file: sync %s: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file: close %s: %w", namespace, err)
	}
	if err := os.Rename(tmp.Name(), s.path(namespace)); err != nil {
		return fmt.Errorf("file: rename %s: %w", namespace, err)
	}
	return nil
}

// Delete removes the namespace file. Missing files are not an error.
func (s *Slot) Delete(_ context.Context, namespace string) error {
	err := os.Remove(s.path(namespace))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file: delete %s: %w", namespace, err)
	}
	return nil
}

// Ping checks that the directory is still there.
func (s *Slot) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("file: stat %s: %w", s.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("file: %s is not a directory", s.dir)
	}
	return nil
}

// Close is a no-op; files are closed after every operation.
func (s *Slot) Close() error { return nil }
