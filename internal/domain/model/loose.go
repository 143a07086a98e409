// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Loose is a provider field that may arrive as a JSON string, a JSON number
// or null. The zero value is an absent field.
type Loose struct {
	text  string
	valid bool
}

// Text returns a present Loose holding s.
func Text(s string) Loose {
	return Loose{text: s, valid: true}
}

// Number returns a present Loose holding the decimal form of n.
func Number(n int) Loose {
	return Loose{text: strconv.Itoa(n), valid: true}
}

// Present reports whether the field was sent with a non-null value.
func (l Loose) Present() bool { return l.valid }

// Blank reports whether the field is absent or an empty string.
func (l Loose) Blank() bool { return !l.valid || l.text == "" }

// String returns the raw text, or "" when absent.
func (l Loose) String() string { return l.text }

// Int coerces the value to an integer. Absent, empty and malformed values
// yield 0; fractional values are truncated toward zero.
func (l Loose) Int() int {
	if l.Blank() {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(l.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int(f)
}

// UnmarshalJSON accepts strings, numbers and null.
func (l *Loose) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = Loose{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Text(s)
		return nil
	}
	*l = Text(string(b))
	return nil
}

// MarshalJSON writes absent values as null and everything else as a string.
func (l Loose) MarshalJSON() ([]byte, error) {
	if !l.valid {
		return []byte("null"), nil
	}
	return json.Marshal(l.text)
}
