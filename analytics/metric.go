// Package analytics derives statistics and time series from a ledger
// snapshot. Every function is pure and recomputes from the full record list.
package analytics

import (
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// Metric is a ratio that may be undefined, such as a win rate over zero
// trades. An undefined Metric never carries NaN.
type Metric struct {
	Value float64
	Valid bool
}

func defined(v float64) Metric { return Metric{Value: v, Valid: true} }

var undefined = Metric{}

// ratio returns num/den, or an undefined Metric when den is zero.
func ratio(num, den float64) Metric {
	if den == 0 {
		return undefined
	}
	return defined(num / den)
}

func (m Metric) IsInf() bool {
	return m.Valid && math.IsInf(m.Value, 0)
}

// Format renders the value with prec decimals, "n/a" when undefined and
// "∞" when unbounded.
func (m Metric) Format(prec int) string {
	switch {
	case !m.Valid:
		return "n/a"
	case math.IsInf(m.Value, 1):
		return "∞"
	case math.IsInf(m.Value, -1):
		return "-∞"
	}
	return strconv.FormatFloat(m.Value, 'f', prec, 64)
}

func (m Metric) String() string {
	return m.Format(2)
}

// MarshalJSON encodes undefined as null and infinities as strings, since
// JSON has no representation for them.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	if math.IsInf(m.Value, 0) {
		return jsoniter.Marshal(m.Format(2))
	}
	return jsoniter.Marshal(m.Value)
}
