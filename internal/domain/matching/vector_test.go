package matching

import (
	"math"
	"testing"
)

func TestCosineSimilarity_SelfAndOpposite(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5, 0.01}

	if got := CosineSimilarity(v, v); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("cos(v, v) = %v, want 1.0", got)
	}

	neg := make([]float64, len(v))
	for i := range v {
		neg[i] = -v[i]
	}
	if got := CosineSimilarity(v, neg); math.Abs(got+1.0) > 1e-9 {
		t.Fatalf("cos(v, -v) = %v, want -1.0", got)
	}
}

func TestCosineSimilarity_DegenerateInputs(t *testing.T) {
	zero := []float64{0, 0, 0}
	v := []float64{1, 2, 3}

	if got := CosineSimilarity(zero, v); got != 0 {
		t.Fatalf("cos(zero, v) = %v, want 0", got)
	}
	if got := CosineSimilarity(nil, v); got != 0 {
		t.Fatalf("cos(nil, v) = %v, want 0", got)
	}
	if got := CosineSimilarity(v, []float64{1, 2}); got != 0 {
		t.Fatalf("cos on mismatched lengths = %v, want 0", got)
	}
}

func TestAsymmetricOverlap(t *testing.T) {
	if got := AsymmetricOverlap(nil, []string{"a", "b"}); got != 0 {
		t.Fatalf("empty query overlap = %v, want 0", got)
	}
	if got := AsymmetricOverlap([]string{"a", "b"}, []string{"a"}); got != 0.5 {
		t.Fatalf("overlap = %v, want 0.5", got)
	}
	if got := AsymmetricOverlap([]string{"a"}, []string{"a", "b", "c"}); got != 1.0 {
		t.Fatalf("overlap = %v, want 1.0 regardless of extra candidate tags", got)
	}
}

func TestAsymmetricOverlap_DuplicateTags(t *testing.T) {
	// Duplicates collapse to set semantics on both sides.
	got := AsymmetricOverlap([]string{"Go", "Go", "React"}, []string{"Go", "Go"})
	if got != 0.5 {
		t.Fatalf("overlap = %v, want 0.5", got)
	}
}

func TestClampPercentage(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0.994, 99},
		{0.995, 100},
		{1.2, 100},
		{-0.3, 0},
		{0, 0},
		{1, 100},
	}
	for _, c := range cases {
		if got := ClampPercentage(c.in); got != c.want {
			t.Fatalf("ClampPercentage(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
