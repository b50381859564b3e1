package catalogs

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Identifier is a source identifier. Upstream feeds are inconsistent about
// whether ids are strings or numbers, so both decode into the same value.
type Identifier string

// String returns the identifier as a string.
func (id Identifier) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id Identifier) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// UnmarshalJSON accepts a JSON string, number or null.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = Identifier(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = Identifier(n.String())
	return nil
}

// UnmarshalYAML accepts a YAML scalar of any kind.
func (id *Identifier) UnmarshalYAML(data []byte) error {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*id = ""
	case string:
		*id = Identifier(strings.TrimSpace(t))
	case uint64:
		*id = Identifier(strconv.FormatUint(t, 10))
	case int64:
		*id = Identifier(strconv.FormatInt(t, 10))
	case int:
		*id = Identifier(strconv.Itoa(t))
	case float64:
		*id = Identifier(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*id = Identifier(strconv.FormatBool(t))
	default:
		*id = Identifier(strings.TrimSpace(string(data)))
	}
	return nil
}
