package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TOMLSource loads a state file in TOML format.
type TOMLSource struct {
	fs   FileSystem
	path string
}

// NewTOMLSource creates a TOML source for the given path.
func NewTOMLSource(path string) *TOMLSource {
	return &TOMLSource{fs: DefaultFS(), path: path}
}

// NewTOMLSourceWithFS creates a TOML source with a custom file system.
func NewTOMLSourceWithFS(fsys FileSystem, path string) *TOMLSource {
	return &TOMLSource{fs: fsys, path: path}
}

// Load reads and parses the configured path.
func (l *TOMLSource) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading state file %s: %w", l.path, err)
	}
	return l.parse(l.path, data)
}

// LoadFromReader parses TOML from an io.Reader.
func (l *TOMLSource) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *TOMLSource) parse(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return m, nil
}
