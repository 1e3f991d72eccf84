package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// JSONSource loads a state file in JSON format. The document must be an
// object at the top level.
type JSONSource struct {
	fs   FileSystem
	path string
}

// NewJSONSource creates a JSON source for the given path.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{fs: DefaultFS(), path: path}
}

// NewJSONSourceWithFS creates a JSON source with a custom file system.
func NewJSONSourceWithFS(fsys FileSystem, path string) *JSONSource {
	return &JSONSource{fs: fsys, path: path}
}

// Load reads and parses the configured path.
func (l *JSONSource) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading state file %s: %w", l.path, err)
	}
	return l.parse(l.path, data)
}

// LoadFromReader parses JSON from an io.Reader.
func (l *JSONSource) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *JSONSource) parse(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid json"}
	}
	v := gjson.ParseBytes(data).Value()
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("top level is %T, want object", v)}
	}
	return m, nil
}
