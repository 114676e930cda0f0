// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"strconv"
)

// Metric is a float result that may be undefined because its denominator
// was zero. Undefined metrics encode as JSON null.
type Metric struct {
	value   float64
	defined bool
}

// Undefined returns a metric with no data
func Undefined() Metric {
	return Metric{}
}

// Defined wraps a computed value
func Defined(v float64) Metric {
	return Metric{value: v, defined: true}
}

// Percentage returns 100*num/den, or Undefined when den is zero
func Percentage(num, den int) Metric {
	if den == 0 {
		return Undefined()
	}
	return Defined(100 * float64(num) / float64(den))
}

// Value returns the metric and whether it is defined
func (m Metric) Value() (float64, bool) {
	return m.value, m.defined
}

func (m Metric) IsDefined() bool {
	return m.defined
}

// Or returns the value, or fallback when undefined
func (m Metric) Or(fallback float64) float64 {
	if !m.defined {
		return fallback
	}
	return m.value
}

func (m Metric) String() string {
	if !m.defined {
		return "undefined"
	}
	return strconv.FormatFloat(m.value, 'f', 2, 64)
}

// Equal reports whether both metrics are undefined or hold the same value
func (m Metric) Equal(other Metric) bool {
	return m == other
}

// Less orders defined metrics by value, with undefined metrics last
func (m Metric) Less(other Metric) bool {
	if m.defined != other.defined {
		return m.defined
	}
	return m.value < other.value
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Defined(v)
	return nil
}
