package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Specs is the free-form technical sheet of a product ("ram" -> "16 GB"),
// persisted as JSON.
type Specs map[string]string

// Value marshals the map into JSON.
func (s Specs) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes stored JSON into the map.
func (s *Specs) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("specs: unsupported scan type %T", value)
	}

	result := make(Specs)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*s = result
	return nil
}
