package reactive

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode reads the value at path into out, which must be a pointer to a
// struct or map. Field mapping follows mapstructure conventions. Inside a
// tracked computation this registers a value interest like Get.
func (s *Store) Decode(path string, out any) error {
	v := s.Get(path)
	if v == nil {
		return fmt.Errorf("%w: %s", ErrNoValue, path)
	}
	if err := mapstructure.Decode(v, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
