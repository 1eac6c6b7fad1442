package matching

import "math"

// CosineSimilarity returns dot(a,b) / (|a|*|b|), in [-1, 1].
// Empty or zero-magnitude inputs yield 0 rather than an error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// AsymmetricOverlap returns |query ∩ candidate| / |query| over the
// distinct tags of each side. The denominator is the query size, so a
// candidate covering every searched tag scores 1 no matter how many
// extra tags it carries. An empty query scores 0.
func AsymmetricOverlap(query, candidate []string) float64 {
	querySet := toSet(query)
	if len(querySet) == 0 {
		return 0
	}

	candidateSet := toSet(candidate)
	hits := 0
	for tag := range querySet {
		if _, ok := candidateSet[tag]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(querySet))
}

// ClampPercentage scales a [0,1]-ish similarity to an integer percent:
// round half away from zero, then clamp into [0,100].
func ClampPercentage(v float64) int {
	p := int(math.Round(v * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func toSet(tags []string) map[string]struct{} {
	if len(tags) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
