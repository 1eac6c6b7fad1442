package matching

import (
	"testing"

	"github.com/google/uuid"
)

func TestRankByQuery_EmptyQuery(t *testing.T) {
	pool := []Candidate{{UserID: uuid.New(), Skills: []string{"Go"}}}
	got := RankByQuery(Query{Limit: 20}, pool)
	if len(got) != 0 {
		t.Fatalf("expected empty result for empty query, got %d", len(got))
	}
}

func TestRankByQuery_OrderingAndExclusion(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	userC := uuid.New()

	pool := []Candidate{
		{UserID: userA, Skills: []string{"Python"}},
		{UserID: userB, Skills: []string{"Python", "React"}},
		{UserID: userC}, // no tags at all, must be excluded
	}

	got := RankByQuery(Query{Skills: []string{"Python", "React"}, Limit: 20}, pool)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].UserID != userB || got[1].UserID != userA {
		t.Fatalf("expected order [B, A], got [%s, %s]", got[0].UserID, got[1].UserID)
	}
	if got[0].SkillsSimilarity != 1.0 {
		t.Fatalf("B skills similarity = %v, want 1.0", got[0].SkillsSimilarity)
	}
	if got[1].SkillsSimilarity != 0.5 {
		t.Fatalf("A skills similarity = %v, want 0.5", got[1].SkillsSimilarity)
	}
	// Skills-only query: combined mirrors the skills score.
	if got[0].CombinedSimilarity != got[0].SkillsSimilarity || got[0].Score != got[0].CombinedSimilarity {
		t.Fatalf("combined/score should equal skills similarity for skills-only query")
	}
}

func TestRankByQuery_CombinedAverage(t *testing.T) {
	c := Candidate{
		UserID:    uuid.New(),
		Skills:    []string{"Go"},
		Interests: []string{"AI", "Music"},
	}

	got := RankByQuery(Query{
		Skills:    []string{"Go", "Rust"},
		Interests: []string{"AI"},
		Limit:     5,
	}, []Candidate{c})
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	// skills 0.5, interests 1.0 -> combined 0.75
	if got[0].CombinedSimilarity != 0.75 {
		t.Fatalf("combined = %v, want 0.75", got[0].CombinedSimilarity)
	}
}

func TestRankByQuery_StableTiesAndLimit(t *testing.T) {
	ids := make([]uuid.UUID, 5)
	pool := make([]Candidate, 5)
	for i := range pool {
		ids[i] = uuid.New()
		pool[i] = Candidate{UserID: ids[i], Skills: []string{"Go"}}
	}

	got := RankByQuery(Query{Skills: []string{"Go"}, Limit: 3}, pool)
	if len(got) != 3 {
		t.Fatalf("expected limit of 3 to apply, got %d", len(got))
	}
	for i := range got {
		if got[i].UserID != ids[i] {
			t.Fatalf("equal scores must keep pool order: pos %d got %s want %s", i, got[i].UserID, ids[i])
		}
	}
}
