// Package filesystem stores each key as one JSON file under a data directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"assessio/internal/ports"
)

const fileExt = ".json"

var _ ports.KeyValueStore = (*Store)(nil)

// Store implements ports.KeyValueStore on a directory
type Store struct {
	dir   string
	quota int64
}

// NewStore creates the data directory if needed. A quota of zero or less
// means unlimited; otherwise it caps the total size of stored files.
func NewStore(dir string, quota int64) (*Store, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, quota: quota}, nil
}

// Dir returns the data directory
func (s *Store) Dir() string { return s.dir }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes through a temp file and rename so readers never see a partial value
func (s *Store) Set(_ context.Context, key, value string) error {
	target := s.path(key)
	if s.quota > 0 {
		used, err := s.usage(target)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.quota {
			return fmt.Errorf("write %s: %w", key, ports.ErrQuotaExceeded)
		}
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return wrapWriteErr(key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return wrapWriteErr(key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return wrapWriteErr(key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return wrapWriteErr(key, err)
	}
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}

// usage sums stored file sizes, leaving out the file about to be replaced
func (s *Store) usage(skip string) (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read data directory: %w", err)
	}
	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		if filepath.Join(s.dir, entry.Name()) == skip {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

func wrapWriteErr(key string, err error) error {
	if errors.Is(err, syscall.ENOSPC) {
		return fmt.Errorf("write %s: %w: %v", key, ports.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("failed to write %s: %w", key, err)
}
