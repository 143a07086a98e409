package rating

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ratings maps raw provider team names to strength scores. Lookups that
// need normalisation scan names in insertion order, so the first table row
// wins when two spellings collapse to the same key.
type Ratings struct {
	values map[string]float64
	names  []string
}

// NewRatings returns an empty mapping.
func NewRatings() *Ratings {
	return &Ratings{values: make(map[string]float64)}
}

// Set stores the rating for name.
func (r *Ratings) Set(name string, v float64) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Len returns the number of rated teams.
func (r *Ratings) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns team names in insertion order.
func (r *Ratings) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Lookup finds a rating by exact name, then by trimmed lower-case name, then
// by accent-folded name.
func (r *Ratings) Lookup(name string) (float64, bool) {
	if r == nil || name == "" || len(r.names) == 0 {
		return 0, false
	}
	if v, ok := r.values[name]; ok {
		return v, true
	}

	low := Key(name)
	for _, n := range r.names {
		if Key(n) == low {
			return r.values[n], true
		}
	}

	folded := Fold(name)
	for _, n := range r.names {
		if Fold(n) == folded {
			return r.values[n], true
		}
	}
	return 0, false
}

// For returns the rating for name, or neutral when it is unknown.
func (r *Ratings) For(name string, neutral float64) float64 {
	if v, ok := r.Lookup(name); ok {
		return v
	}
	return neutral
}

// Key is the case and surrounding-whitespace insensitive form of a name.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Fold strips diacritics and collapses inner whitespace on top of Key,
// so "Atlético" and "atletico" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(Key(folded)), " ")
}
