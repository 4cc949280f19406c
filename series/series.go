// Package series holds the canonical storage time series parsed from the
// BNetzA CSV export: one point per reporting day with the storage fill level
// and the reported change versus the previous day.
package series

import "time"

// Point is one day of the canonical series. Delta is nil when the source row
// carried no usable previous-day change value.
type Point struct {
	Day   time.Time
	Level float64
	Delta *float64
}

// Series is an ordered sequence of points, ascending by day. It is built once
// by Parse and never mutated afterwards.
type Series []Point

// Tail returns the trailing n points, or the whole series when it is shorter.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return nil
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Last returns the final point. Callers must check len(s) > 0 first.
func (s Series) Last() Point {
	return s[len(s)-1]
}
