package metrics

// PrecisionAtK computes the fraction of the top-K cutoff covered by relevant candidates.
// The denominator is k even when the ranked list is shorter.
func PrecisionAtK(ranked []string, relevant Set, k int) float64 {
	if k <= 0 {
		return 0
	}

	return float64(intersectTopK(ranked, relevant, k)) / float64(k)
}

// RecallAtK computes the fraction of all relevant candidates found in top-K.
func RecallAtK(ranked []string, relevant Set, k int) float64 {
	if k <= 0 || len(relevant) == 0 {
		return 0
	}

	return float64(intersectTopK(ranked, relevant, k)) / float64(len(relevant))
}

// F1AtK computes the harmonic mean of P@K and R@K.
func F1AtK(ranked []string, relevant Set, k int) float64 {
	return F1(PrecisionAtK(ranked, relevant, k), RecallAtK(ranked, relevant, k))
}

func F1(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}

	return 2 * p * r / (p + r)
}
