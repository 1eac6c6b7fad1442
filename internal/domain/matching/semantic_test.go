package matching

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestScoreSemantic_Weights(t *testing.T) {
	subject := Embeddings{
		Skills:    []float64{1, 0},
		Interests: []float64{0, 1},
		Combined:  []float64{1, 1},
	}
	// Identical candidate: every cosine is 1, score is the weight sum.
	_, _, _, score := ScoreSemantic(subject, subject)
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("self score = %v, want 1.0", score)
	}

	// Candidate orthogonal on skills only.
	candidate := Embeddings{
		Skills:    []float64{0, 1},
		Interests: []float64{0, 1},
		Combined:  []float64{1, 1},
	}
	skillsSim, interestsSim, combinedSim, score := ScoreSemantic(subject, candidate)
	if skillsSim != 0 || interestsSim != 1 || math.Abs(combinedSim-1) > 1e-9 {
		t.Fatalf("sub-scores = %v/%v/%v, want 0/1/1", skillsSim, interestsSim, combinedSim)
	}
	want := 0.5*1 + 0.3*0 + 0.2*1
	if math.Abs(score-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", score, want)
	}
}

func TestRankBySimilarity_StableSortAndLimit(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	results := []Scored{
		{UserID: first, Score: 0.4},
		{UserID: second, Score: 0.9},
		{UserID: third, Score: 0.4},
	}

	ranked := RankBySimilarity(results, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 results, got %d", len(ranked))
	}
	if ranked[0].UserID != second {
		t.Fatalf("highest score must rank first")
	}
	if ranked[1].UserID != first {
		t.Fatalf("tied scores must keep input order")
	}
}
