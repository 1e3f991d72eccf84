// Package loader seeds a reactive store's root value from files.
//
// The loader parses state files in TOML or JSON format into nested maps and
// merges any number of sources into one root, later sources overriding
// earlier ones. The merged result is handed to Store.Set, which turns the
// whole load into precise per-path notifications.
package loader

import (
	"io"
	"os"
)

// Source parses one state source into a nested map.
// Returns nil, nil when the source does not exist (not an error).
type Source interface {
	Load() (map[string]any, error)
}

// ReaderSource is a source that can also parse from an io.Reader.
type ReaderSource interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is the single file operation the sources need. Tests
// substitute an in-memory implementation such as fstest.MapFS.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}
