package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Text is a leniently decoded string field. Numbers and booleans are kept as
// their literal text; objects and arrays are treated as absent.
type Text struct {
	Value   string
	Present bool
}

// T builds a present Text.
func T(s string) Text { return Text{Value: s, Present: true} }

// UnmarshalJSON never fails.
func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*t = Text{Value: strings.TrimSpace(s), Present: true}
		}
	case '{', '[':
	default:
		*t = Text{Value: string(b), Present: true}
	}
	return nil
}

// MarshalJSON writes the value, or null when absent.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Present {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

func (t Text) usable() bool {
	return t.Present && t.Value != ""
}

// Number is a leniently decoded numeric field. It accepts JSON numbers and
// numeric strings (thousands separators and a rupee sign are ignored).
// Anything else is recorded as present but invalid.
type Number struct {
	Value   float64
	Present bool
	Valid   bool
}

// N builds a present Number; NaN and infinities are marked invalid.
func N(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{Present: true}
	}
	return Number{Value: v, Present: true, Valid: true}
}

// UnmarshalJSON never fails.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	n.Present = true
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = cleanNumeric(s)
		if raw == "" {
			n.Present = false
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.Value = v
	n.Valid = true
	return nil
}

// MarshalJSON writes the value, or null when absent or invalid.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// firstText returns the first alias with a non-empty value.
func firstText(vals ...Text) (string, bool) {
	for _, v := range vals {
		if v.usable() {
			return v.Value, true
		}
	}
	return "", false
}

// firstNumber returns the first alias carrying a valid number. Missing and
// non-numeric aliases are skipped; zero is a valid match.
func firstNumber(vals ...Number) (float64, bool) {
	for _, v := range vals {
		if v.Valid {
			return v.Value, true
		}
	}
	return 0, false
}

// anyInvalid reports whether an alias was supplied but could not be parsed.
func anyInvalid(vals ...Number) bool {
	for _, v := range vals {
		if v.Present && !v.Valid {
			return true
		}
	}
	return false
}
