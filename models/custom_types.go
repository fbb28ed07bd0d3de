package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Flag keeps the raw JSON of an optional boolean switch. A switch is on
// unless the caller sent the literal false; absence, null, strings and
// numbers all count as on.
type Flag struct {
	raw json.RawMessage
}

// NewFlag builds a Flag holding the given boolean.
func NewFlag(v bool) Flag {
	return Flag{raw: json.RawMessage(strconv.FormatBool(v))}
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return []byte("null"), nil
	}
	return f.raw, nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	return nil
}

// Enabled reports whether the switch is on.
func (f Flag) Enabled() bool {
	return string(bytes.TrimSpace(f.raw)) != "false"
}

// Years keeps the raw JSON of a registration period so that a bad value
// surfaces as a validation error instead of a decode error.
type Years struct {
	raw json.RawMessage
}

// NewYears builds a Years holding n.
func NewYears(n int) Years {
	return Years{raw: json.RawMessage(strconv.Itoa(n))}
}

func (y Years) MarshalJSON() ([]byte, error) {
	if len(y.raw) == 0 {
		return []byte("null"), nil
	}
	return y.raw, nil
}

func (y *Years) UnmarshalJSON(data []byte) error {
	y.raw = append(y.raw[:0], data...)
	return nil
}

// Int returns the period as a whole number of years. It accepts a JSON
// number or a numeric string and reports false for anything else,
// including fractional values.
func (y Years) Int() (int, bool) {
	raw := bytes.TrimSpace(y.raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// Text is a string field that also accepts JSON numbers and booleans, the
// way contact forms tend to send postal codes and phone numbers. Values
// that are falsy (false, 0, null) decode to the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		*t = ""
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 'n':
		*t = ""
	case 't':
		*t = "true"
	case 'f':
		*t = ""
	case '{', '[':
		return fmt.Errorf("expected a string, got %s", raw)
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return fmt.Errorf("expected a string, got %s", raw)
		}
		if f == 0 {
			*t = ""
			return nil
		}
		*t = Text(raw)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}
