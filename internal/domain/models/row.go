package models

import (
	"strconv"
	"strings"
	"time"
)

// Row maps column names to the values returned by the database
type Row map[string]interface{}

// String returns the column as a string, "" when missing or NULL
func (r Row) String(column string) string {
	if s := r.NullString(column); s != nil {
		return *s
	}
	return ""
}

// NullString returns the column as a string pointer, nil when missing or NULL
func (r Row) NullString(column string) *string {
	var s string
	switch v := r[column].(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return nil
	}
	return &s
}

// Int64 returns the column as an int64, 0 when missing, NULL or not numeric
func (r Row) Int64(column string) int64 {
	if n := r.NullInt64(column); n != nil {
		return *n
	}
	return 0
}

// NullInt64 returns the column as an int64 pointer.
// Text columns holding integers are parsed.
func (r Row) NullInt64(column string) *int64 {
	var n int64
	switch v := r[column].(type) {
	case int64:
		n = v
	case int32:
		n = int64(v)
	case int16:
		n = int64(v)
	case int:
		n = int64(v)
	case float64:
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

// Time returns the column as a time.
// ICAT stores timestamps as zero-padded epoch seconds in text columns, so
// strings and integers are read as Unix seconds.
func (r Row) Time(column string) time.Time {
	switch v := r[column].(type) {
	case time.Time:
		return v.UTC()
	case nil:
		return time.Time{}
	}
	if secs := r.NullInt64(column); secs != nil {
		return time.Unix(*secs, 0).UTC()
	}
	return time.Time{}
}
