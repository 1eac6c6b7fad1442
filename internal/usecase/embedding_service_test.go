package usecase

import (
	"context"
	"errors"
	"testing"

	"quicksync/internal/repository"

	"github.com/google/uuid"
)

type recordingEncoder struct {
	stubEncoder
	lastTexts []string
}

func (r *recordingEncoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	r.lastTexts = texts
	return r.stubEncoder.Encode(ctx, texts)
}

func TestEmbeddingService_GetOrCompute_ReturnsExisting(t *testing.T) {
	repo := newMemEmbeddingRepo()
	userID := uuid.New()
	repo.store[userID] = repository.UserEmbedding{
		UserID:            userID,
		CombinedEmbedding: []float64{0.1, 0.2},
	}

	enc := &recordingEncoder{}
	svc := NewEmbeddingService(enc, repo)

	e, err := svc.GetOrCompute(context.Background(), repository.User{ID: userID, Skills: []string{"Go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if enc.calls != 0 {
		t.Fatalf("expected no encoder call for cached record, got %d", enc.calls)
	}
	if len(e.CombinedEmbedding) != 2 {
		t.Fatalf("unexpected record: %v", e)
	}
}

func TestEmbeddingService_GetOrCompute_EncodesAllThreeTexts(t *testing.T) {
	repo := newMemEmbeddingRepo()
	enc := &recordingEncoder{}
	svc := NewEmbeddingService(enc, repo)

	u := repository.User{
		ID:        uuid.New(),
		Skills:    []string{"Go", "Python"},
		Interests: []string{"AI"},
	}
	e, err := svc.GetOrCompute(context.Background(), u)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := []string{"Go Python", "AI", "Go Python AI"}
	if len(enc.lastTexts) != 3 {
		t.Fatalf("expected 3 texts, got %v", enc.lastTexts)
	}
	for i, txt := range want {
		if enc.lastTexts[i] != txt {
			t.Fatalf("text %d: expected %q, got %q", i, txt, enc.lastTexts[i])
		}
	}

	if _, ok := repo.store[u.ID]; !ok {
		t.Fatalf("expected record stored")
	}
	if e.UpdatedAt.IsZero() {
		t.Fatalf("expected updated_at set")
	}
}

func TestEmbeddingService_EncoderErrorStoresNothing(t *testing.T) {
	repo := newMemEmbeddingRepo()
	encErr := errors.New("provider down")
	svc := NewEmbeddingService(&stubEncoder{err: encErr}, repo)

	u := repository.User{ID: uuid.New(), Skills: []string{"Go"}}
	_, err := svc.GetOrCompute(context.Background(), u)
	if !errors.Is(err, encErr) {
		t.Fatalf("expected encoder error to propagate, got %v", err)
	}
	if len(repo.store) != 0 {
		t.Fatalf("expected nothing stored on failure")
	}
}

func TestEmbeddingService_Refresh_Overwrites(t *testing.T) {
	repo := newMemEmbeddingRepo()
	enc := &stubEncoder{vector: []float64{0, 1}}
	svc := NewEmbeddingService(enc, repo)

	u := repository.User{ID: uuid.New(), Skills: []string{"Go"}}
	if _, err := svc.GetOrCompute(context.Background(), u); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	enc.vector = []float64{1, 0}
	e, err := svc.Refresh(context.Background(), u)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if enc.calls != 2 {
		t.Fatalf("expected refresh to re-encode, got %d calls", enc.calls)
	}
	if e.CombinedEmbedding[0] != 1 {
		t.Fatalf("expected overwritten vector, got %v", e.CombinedEmbedding)
	}
}
