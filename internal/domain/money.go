package domain

import (
	"fmt"
	"math"
)

// Amounts are carried as integer paise everywhere to avoid float drift
// in threshold comparisons. PaisaFromFloat is the single conversion
// point for numeric input arriving at the HTTP boundary; it rejects
// non-finite values before they can reach a comparison.
func PaisaFromFloat(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount is not a finite number")
	}
	if v > math.MaxInt64/2 || v < math.MinInt64/2 {
		return 0, fmt.Errorf("amount out of range")
	}
	return int64(math.Round(v)), nil
}
