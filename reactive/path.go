package reactive

import "strings"

// pathData is the cached per-path metadata: the tokenized path, split once
// and reused forever, plus the optional attachments a path can carry.
// Entries are created lazily and live for the store's lifetime.
type pathData struct {
	tokens  []string
	mutator MutatorFunc
	wrapper *PathRef
	comp    Computation
}

// pathData returns the cache entry for path, creating it on first use.
func (s *Store) pathData(path string) *pathData {
	pd := s.paths[path]
	if pd == nil {
		pd = &pathData{tokens: splitPath(path)}
		s.paths[path] = pd
	}
	return pd
}

// splitPath tokenizes a dot-separated path. Root and the empty path produce
// no tokens; empty segments are dropped.
func splitPath(path string) []string {
	if path == "" || path == Root {
		return nil
	}
	parts := strings.Split(path, ".")
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
