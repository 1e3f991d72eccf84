package reactive

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// AssignJSON decodes raw as JSON and assigns the result at path. Objects
// decode to map[string]any, arrays to []any, numbers to float64.
func (s *Store) AssignJSON(path string, raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return ErrInvalidJSON
	}
	s.Assign(path, gjson.ParseBytes(raw).Value())
	return nil
}

// GetJSON returns the value at path encoded as JSON. A nonexistent path
// encodes as null. Inside a tracked computation this registers a value
// interest like Get.
func (s *Store) GetJSON(path string) ([]byte, error) {
	v := s.Get(path)

	// sjson handles the encoding of arbitrary values; wrap and unwrap to
	// get the bare document back out.
	doc, err := sjson.SetBytes([]byte(`{}`), "v", v)
	if err != nil {
		return nil, err
	}
	return []byte(gjson.GetBytes(doc, "v").Raw), nil
}
