package loader

import (
	"fmt"

	"dario.cat/mergo"
)

// Merge loads every source in order and deep-merges the results, later
// sources overriding earlier ones. Sources reporting nil (missing files)
// are skipped. The result is never nil.
func Merge(sources ...Source) (map[string]any, error) {
	merged := make(map[string]any)
	for _, src := range sources {
		data, err := src.Load()
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		if err := mergo.Merge(&merged, data, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging state sources: %w", err)
		}
	}
	return merged, nil
}

// ParseError describes a failure to parse one state source.
type ParseError struct {
	// Path is the source that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
