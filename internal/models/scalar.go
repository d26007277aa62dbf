// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Scalar is a loosely typed JSON scalar (number, string, bool or null).
//
// Present reports JavaScript-style truthiness: null, "", 0, NaN and false are
// all treated as absent, which is how the interface decides whether to show a
// badge or a placeholder dash.
type Scalar struct {
	text  string
	num   float64
	isNum bool
	set   bool
}

// NumberScalar returns a Scalar holding a number.
func NumberScalar(v float64) Scalar {
	return Scalar{num: v, isNum: true, set: true}
}

// StringScalar returns a Scalar holding a string.
func StringScalar(s string) Scalar {
	return Scalar{text: s, set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Scalar{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("scalar: %w", err)
		}
		*s = StringScalar(str)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("scalar: %w", err)
		}
		// false is kept as an empty string so it stays falsy
		s.set = true
		if b {
			s.text = "true"
		}
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("scalar: invalid number %q: %w", data, err)
		}
		*s = NumberScalar(f)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch {
	case !s.set:
		return []byte("null"), nil
	case s.isNum:
		if math.IsNaN(s.num) || math.IsInf(s.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(s.num, 'f', -1, 64)), nil
	default:
		return json.Marshal(s.text)
	}
}

// Present reports whether the value would be truthy in the browser.
func (s Scalar) Present() bool {
	if !s.set {
		return false
	}
	if s.isNum {
		return s.num != 0 && !math.IsNaN(s.num)
	}
	return s.text != ""
}

// Float returns the numeric value. Numeric strings are parsed; anything else
// reports false.
func (s Scalar) Float() (float64, bool) {
	if !s.set {
		return 0, false
	}
	if s.isNum {
		return s.num, true
	}
	f, err := strconv.ParseFloat(s.text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String formats the value the way the browser would print it: integral
// floats lose their fraction ("8.0" prints as "8"), strings print verbatim and
// null prints as the empty string.
func (s Scalar) String() string {
	if !s.set {
		return ""
	}
	if s.isNum {
		return FormatNumber(s.num)
	}
	return s.text
}

// FormatNumber prints a float with the shortest representation that round
// trips, without exponent notation for ordinary magnitudes.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
