package calc

import "math"

// Precision is the number of decimal places binary results are rounded to.
const Precision = 12

const epsilon = 0x1p-52

// Round rounds value to the given number of decimal places, half away from
// zero. A machine epsilon is added before scaling so that values like 1.005
// land on the intended side.
//
// Values whose scaled magnitude leaves no fractional bits are returned as is.
func Round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	scaled := (value + epsilon) * factor
	if math.IsNaN(scaled) || math.Abs(scaled) >= 1<<52 {
		return value
	}
	return math.Round(scaled) / factor
}

// Factorial computes n!. It returns ErrNotDefined for negative, non-integral
// and NaN inputs, and ErrOverflow when the result is not finite.
func Factorial(n float64) (float64, ErrorKind) {
	if math.IsNaN(n) || n < 0 || n != math.Trunc(n) {
		return 0, ErrNotDefined
	}
	result := 1.0
	for ; n > 1; n-- {
		result *= n
		if math.IsInf(result, 0) {
			return result, ErrOverflow
		}
	}
	return result, ErrNone
}
