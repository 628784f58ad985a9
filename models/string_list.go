package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a list-valued profile attribute (skills, interests,
// completed courses). It is persisted as a JSON array so the same column
// definition works for every supported SQL dialect.
type StringList []string

// OrEmpty returns l, or an empty non-nil list when l is nil, so that JSON
// output is always an array and never null.
func (l StringList) OrEmpty() StringList {
	if l == nil {
		return StringList{}
	}
	return l
}

// Value implements [driver.Valuer].
func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(l.OrEmpty())
	if err != nil {
		return nil, fmt.Errorf("error marshaling string list: %w", err)
	}
	return b, nil
}

// Scan implements [sql.Scanner]. NULL scans into an empty list.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for string list", src)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("error unmarshaling string list: %w", err)
	}
	*l = StringList(list).OrEmpty()
	return nil
}
