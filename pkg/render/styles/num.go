package styles

import (
	"math"
	"strconv"
)

// Num formats a coordinate with at most two decimals and no trailing zeros.
func Num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
