package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON-backed column types. Sheets have an arbitrary header set per file, so
// headers, row records and the type map are stored as JSON documents rather
// than fixed columns.

type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Row is one data row keyed by header name. Values are scalars; cells read
// from a workbook are strings, edited cells may hold whatever scalar the
// caller sent.
type Row map[string]any

type RowSlice []Row

func (r RowSlice) Value() (driver.Value, error) {
	if r == nil {
		r = RowSlice{}
	}
	return json.Marshal(r)
}

func (r *RowSlice) Scan(value interface{}) error {
	return scanJSON(value, r)
}

type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		m = StringMap{}
	}
	return json.Marshal(m)
}

func (m *StringMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

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
		return fmt.Errorf("unsupported column type %T", value)
	}
}
