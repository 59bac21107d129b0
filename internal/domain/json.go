package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// WeatherSensitivity maps a weather scenario id to a demand multiplier.
// Stored as a JSON column.
type WeatherSensitivity map[string]float64

func (w WeatherSensitivity) Value() (driver.Value, error) {
	return marshalJSONColumn(w, w == nil)
}

func (w *WeatherSensitivity) Scan(src interface{}) error {
	return unmarshalJSONColumn(src, w)
}

// StringList is an ordered list of strings stored as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return marshalJSONColumn(l, l == nil)
}

func (l *StringList) Scan(src interface{}) error {
	return unmarshalJSONColumn(src, l)
}

// JSONMap holds free-form details stored as a JSON column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	return marshalJSONColumn(m, m == nil)
}

func (m *JSONMap) Scan(src interface{}) error {
	return unmarshalJSONColumn(src, m)
}

func marshalJSONColumn(v interface{}, isNil bool) (driver.Value, error) {
	if isNil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return b, nil
}

func unmarshalJSONColumn(src interface{}, dest interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}
