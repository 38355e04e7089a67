package syndrome

// Bayes implements the optional monotone soft-min combination of two LLRs
// reaching the same GF symbol from different syndromes (spec §4.4 "Bayes
// refinement"):
//
//	bayes(a, b) = min(a,b) * f(|a-b|)
//
// with f piecewise constant in {0.5, 0.75, 0.825, 0.9375, 1.0} selected by
// breakpoints {0.1, 0.2, 1.0, 2.0} on |a-b|, matching
// original_source/syndrome_decoder.c's bayes().
func Bayes(a, b float32) float32 {
	min, diff := a, b-a
	if b < a {
		min, diff = b, a-b
	}

	switch {
	case diff < 0.1:
		return 0.5 * min
	case diff < 0.2:
		return 0.75 * min
	case diff < 1.0:
		return 0.825 * min
	case diff < 2.0:
		return 0.9375 * min
	default:
		return min
	}
}
