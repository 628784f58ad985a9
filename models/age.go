package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Age is the age profile attribute. Browser forms submit it as text, so
// besides a JSON number it decodes from a numeric string. An empty string
// decodes to zero, the value stored for an age that was not given.
type Age int

// UnmarshalJSON implements [json.Unmarshaler]. JSON null leaves a unchanged.
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("error decoding age: %w", err)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*a = 0
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("age must be a whole number, got %s", data)
	}
	*a = Age(n)
	return nil
}
