package cache

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps each entry as a plain file, so a cached SVG can be opened
// directly. Entries live at dir/<2 hex>/<62 hex>.<kind>; the file's
// modification time is its age.
type FileCache struct {
	dir    string
	maxAge time.Duration
}

// NewFileCache creates dir if needed. Entries older than maxAge are treated
// as misses and removed; maxAge 0 keeps them forever.
func NewFileCache(dir string, maxAge time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, maxAge: maxAge}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get reads an entry.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	info, err := os.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if c.maxAge > 0 && time.Since(info.ModTime()) > c.maxAge {
		_ = os.Remove(path)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set writes an entry. The write goes through a temp file so concurrent
// readers never see a partial artifact.
func (c *FileCache) Set(ctx context.Context, key string, data []byte) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes an entry. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// Stats returns the number of entries and their total size in bytes.
func (c *FileCache) Stats() (entries int, size int64, err error) {
	err = c.walk(func(path string, info fs.FileInfo) {
		entries++
		size += info.Size()
	})
	return entries, size, err
}

// Clear removes every entry and the emptied subdirectories. It returns the
// number of entries removed.
func (c *FileCache) Clear() (int, error) {
	removed := 0
	err := c.walk(func(path string, _ fs.FileInfo) {
		if os.Remove(path) == nil {
			removed++
		}
	})
	if err != nil {
		return removed, err
	}

	subdirs, err := os.ReadDir(c.dir)
	if err != nil {
		return removed, err
	}
	for _, d := range subdirs {
		if d.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, d.Name())) // fails while non-empty
		}
	}
	return removed, nil
}

func (c *FileCache) walk(fn func(path string, info fs.FileInfo)) error {
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fn(path, info)
		return nil
	})
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+"."+kindOf(key))
}

var _ Cache = (*FileCache)(nil)
