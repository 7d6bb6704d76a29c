package keystore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File stores each key as its own file under dir. Writes go through a temp
// file and rename so a reader never observes a half-written value. Changes
// made by another process are observable by polling mtimes, which is how
// cross-process logout propagates for this backend.
type File struct {
	dir          string
	pollInterval time.Duration
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &File{dir: dir, pollInterval: time.Second}, nil
}

func (s *File) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read key %s: %w", key, err)
	}
	return data, nil
}

func (s *File) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write key %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write key %s: %w", key, err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write key %s: %w", key, err)
	}
	return nil
}

func (s *File) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Watch polls the watched keys' mtimes and invokes fn whenever any key is
// created, rewritten or removed. Blocks until ctx is done.
func (s *File) Watch(ctx context.Context, keys []string, fn func()) error {
	stamps := make(map[string]time.Time, len(keys))
	for _, key := range keys {
		stamps[key] = s.mtime(key)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			changed := false
			for _, key := range keys {
				if current := s.mtime(key); current != stamps[key] {
					stamps[key] = current
					changed = true
				}
			}
			if changed {
				fn()
			}
		}
	}
}

func (s *File) mtime(key string) time.Time {
	info, err := os.Stat(s.path(key))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
