package types

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"time"
)

// Time is stored as RFC 3339 text with nanoseconds so rows sort by value.
type Time struct {
	time.Time
}

const layout = "2006-01-02T15:04:05.000000000Z07:00"

func (t *Time) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		t.Time = v.UTC()
		return nil
	default:
		return fmt.Errorf("invalid type in DB, type=%s, value=%v", reflect.TypeOf(src), src)
	}

	parsed, err := time.Parse(layout, s)
	if err != nil {
		return fmt.Errorf("invalid time in DB, value=%s: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Time) Value() (driver.Value, error) {
	return t.UTC().Format(layout), nil
}
