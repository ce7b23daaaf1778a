package metrics

// AveragePrecisionAtK sums precision at every relevant rank within the top-K and divides
// by min(k, |relevant|), or by 1 when nothing is relevant.
//
// The capped normalizer lets AP@k reach 1.0 for k < |relevant| when the whole prefix is
// relevant. Duplicate candidates are counted at each position they occupy, so a ranked
// list that repeats a relevant id can score above 1.0: ["a", "a"] against {"a"} gives
// AP@2 = (1/1 + 2/2) / 1 = 2. Deduplicate the ranked list first if AP must stay in [0, 1].
// ComputeCurves and the system MAP inherit the same behavior.
func AveragePrecisionAtK(ranked []string, relevant Set, k int) float64 {
	if k <= 0 {
		return 0
	}

	n := min(k, len(ranked))
	var sumPrecision float64
	var relevantSeen int

	for i := 0; i < n; i++ {
		if relevant.Contains(ranked[i]) {
			relevantSeen++
			sumPrecision += float64(relevantSeen) / float64(i+1)
		}
	}

	return sumPrecision / float64(apNormalizer(k, len(relevant)))
}

func apNormalizer(k, totalRelevant int) int {
	if totalRelevant == 0 {
		return 1
	}
	return min(k, totalRelevant)
}

// Curves holds the per-cutoff series of a single query. Index i stores the value at k = i+1.
type Curves struct {
	Precision []float64
	Recall    []float64
	AP        []float64
}

// ComputeCurves sweeps k = 1..maxK in a single pass. Every value equals what the
// corresponding *AtK function returns for the same k.
func ComputeCurves(ranked []string, relevant Set, maxK int) Curves {
	c := Curves{
		Precision: make([]float64, maxK),
		Recall:    make([]float64, maxK),
		AP:        make([]float64, maxK),
	}

	totalRelevant := len(relevant)
	seen := make(map[string]struct{})
	var hits int
	var relevantSeen int
	var sumPrecision float64

	for k := 1; k <= maxK; k++ {
		if k <= len(ranked) {
			id := ranked[k-1]
			if relevant.Contains(id) {
				relevantSeen++
				sumPrecision += float64(relevantSeen) / float64(k)
				if _, dup := seen[id]; !dup {
					seen[id] = struct{}{}
					hits++
				}
			}
		}

		c.Precision[k-1] = float64(hits) / float64(k)
		if totalRelevant > 0 {
			c.Recall[k-1] = float64(hits) / float64(totalRelevant)
		}
		c.AP[k-1] = sumPrecision / float64(apNormalizer(k, totalRelevant))
	}

	return c
}
