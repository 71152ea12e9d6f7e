package attack

import "math"

// ExpectedBruteForceTries returns N = ceil(2^(8s) * ln(1/(1-P))), the
// brute-force preimage iteration budget for target success probability P
// under s-byte truncation.
func ExpectedBruteForceTries(s int, p float64) uint64 {
	space := math.Pow(2, float64(8*s))
	n := space * math.Log(1/(1-p))
	return uint64(math.Ceil(n))
}

// ExpectedBirthdayTries returns N = ceil(sqrt(2 * 2^(8s) * ln(1/(1-P)))),
// the birthday-paradox collision iteration budget.
func ExpectedBirthdayTries(s int, p float64) uint64 {
	space := math.Pow(2, float64(8*s))
	n := math.Sqrt(2 * space * math.Log(1/(1-p)))
	return uint64(math.Ceil(n))
}
