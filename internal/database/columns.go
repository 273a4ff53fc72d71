package database

import (
	"database/sql"
	"encoding/json"
)

// NullString returns nil for SQL NULL.
func NullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// NullInt returns nil for SQL NULL.
func NullInt(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// NullFloat returns nil for SQL NULL.
func NullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// EncodeStringList renders a JSON array column value. It returns a string
// because MySQL rejects binary-charset parameters for JSON columns. A nil
// list is stored as [].
func EncodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	return string(data), err
}

// DecodeStringList decodes a nullable JSON array column. NULL yields nil.
func DecodeStringList(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
