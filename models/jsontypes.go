package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuantityMap is a JSON column mapping a label (size or color) to a unit count.
type QuantityMap map[string]int

// Total returns the sum of all counts in the map.
func (m QuantityMap) Total() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

func (m QuantityMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *QuantityMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// JSONMap is a free-form JSON column (product specs, order customization).
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// StringList is a JSON column holding a list of strings (tags, file keys).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// scanJSON decodes a JSON database value into dest. Postgres returns []byte
// and SQLite returns string, so both are handled.
func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported type %T for JSON column", value)
	}
}
