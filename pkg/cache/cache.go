// Package cache stores rendered artifacts keyed by the content that
// produced them.
//
// Graphviz layout is the slowest step when frames are written to disk or
// served over HTTP, and an animation repeats many identical frames (every
// replay of a traversal, every clear). Keys are derived from the DOT
// source, so a hit is always byte-for-byte what a fresh render would give.
//
//	c, err := cache.NewFileCache(dir, 7*24*time.Hour)
//	key := cache.Key("svg", []byte(dot))
//	if data, ok, _ := c.Get(ctx, key); ok {
//		return data, nil
//	}
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Cache is a byte store. Get reports a miss with ok == false and a nil
// error; errors are reserved for storage failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builds a cache key for an artifact of the given kind ("svg", "png")
// rendered from source.
func Key(kind string, source []byte) string {
	return kind + ":" + Hash(source)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// kindOf returns the part of key before the first colon, or "bin".
func kindOf(key string) string {
	kind, _, ok := strings.Cut(key, ":")
	if !ok || kind == "" {
		return "bin"
	}
	return kind
}
