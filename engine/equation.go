package engine

// ValidEquation checks an addition-only equation over the selected
// number card values: valid iff one of the values equals the sum of
// all the others. Order does not matter. Multiplication and
// subtraction are not permitted.
func ValidEquation(values []int) bool {
	if len(values) < 3 {
		return false
	}

	total := 0
	for _, v := range values {
		total += v
	}

	// v == total - v for the value acting as the sum side.
	for _, v := range values {
		if 2*v == total {
			return true
		}
	}
	return false
}
