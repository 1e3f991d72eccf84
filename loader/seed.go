package loader

import "github.com/jeffm24/meteor-reactive-store/reactive"

// Seed merges every source and replaces the store's root with the result.
// On a store that already holds state this diffs precisely: only the paths
// whose values actually differ notify their interests.
func Seed(s *reactive.Store, sources ...Source) error {
	root, err := Merge(sources...)
	if err != nil {
		return err
	}
	s.Set(root)
	return nil
}
