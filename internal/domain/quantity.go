package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidQuantity is returned for anything that is not a plain decimal number.
var ErrInvalidQuantity = errors.New("quantity must be a decimal number")

var quantityPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// Quantity is an exact decimal amount kept in its textual form so no
// precision is lost between the API and the NUMERIC column.
type Quantity string

// ParseQuantity validates s and returns it as a Quantity.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if !quantityPattern.MatchString(s) {
		return "", ErrInvalidQuantity
	}
	return Quantity(s), nil
}

func (q Quantity) String() string {
	return string(q)
}

// MarshalJSON writes the quantity as a JSON string.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(q))
}

// UnmarshalJSON accepts a JSON string or number and keeps its text unchecked;
// callers validate it with ParseQuantity.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*q = Quantity(s)
	default:
		*q = Quantity(trimmed)
	}
	return nil
}
