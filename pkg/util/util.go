package util

import (
	"math"
	"strconv"
)

// FloorRatio returns n/d using integer division. ok is false when d == 0.
func FloorRatio(n, d int64) (q int64, ok bool) {
	if d == 0 {
		return 0, false
	}
	q = n / d
	// Go truncates toward zero; floor like the ratio is presented.
	if (n%d != 0) && ((n < 0) != (d < 0)) {
		q--
	}
	return q, true
}

// Round rounds x to the given number of decimal places, half away from zero.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow10(places)
	return math.Round(x*p) / p
}

// Trunc truncates x toward zero to an integer.
func Trunc(x float64) int64 { return int64(math.Trunc(x)) }

// FmtFloat formats x with the minimal number of digits that round-trips.
func FmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
