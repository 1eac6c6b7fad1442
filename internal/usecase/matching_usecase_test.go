package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"quicksync/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	users     []repository.User
	listCalls int
}

func (m *mockUserRepo) Create(context.Context, repository.User) error { return nil }
func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrUserNotFound
}
func (m *mockUserRepo) GetByEmail(context.Context, string) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}
func (m *mockUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m *mockUserRepo) List(context.Context) ([]repository.User, error) {
	m.listCalls++
	return m.users, nil
}
func (m *mockUserRepo) ListExcluding(_ context.Context, excludeID uuid.UUID) ([]repository.User, error) {
	out := make([]repository.User, 0, len(m.users))
	for _, u := range m.users {
		if u.ID != excludeID {
			out = append(out, u)
		}
	}
	return out, nil
}
func (m *mockUserRepo) UpdateProfile(context.Context, uuid.UUID, repository.ProfileUpdate) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}

type mockSessionRepo struct {
	recorded []repository.MatchingSession
}

func (m *mockSessionRepo) Record(_ context.Context, s repository.MatchingSession) error {
	m.recorded = append(m.recorded, s)
	return nil
}

type memEmbeddingRepo struct {
	store map[uuid.UUID]repository.UserEmbedding
}

func newMemEmbeddingRepo() *memEmbeddingRepo {
	return &memEmbeddingRepo{store: make(map[uuid.UUID]repository.UserEmbedding)}
}

func (m *memEmbeddingRepo) FindByUserID(_ context.Context, userID uuid.UUID) (repository.UserEmbedding, error) {
	e, ok := m.store[userID]
	if !ok {
		return repository.UserEmbedding{}, repository.ErrEmbeddingNotFound
	}
	return e, nil
}

func (m *memEmbeddingRepo) Upsert(_ context.Context, e repository.UserEmbedding) (repository.UserEmbedding, error) {
	e.UpdatedAt = time.Now().UTC()
	m.store[e.UserID] = e
	return e, nil
}

type stubEncoder struct {
	calls  int
	vector []float64
	err    error
}

func (s *stubEncoder) Encode(_ context.Context, texts []string) ([][]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		v := s.vector
		if v == nil {
			v = []float64{1, 0, 0}
		}
		out[i] = v
	}
	return out, nil
}

type memCache struct {
	store map[string][]byte
}

func newMemCache() *memCache { return &memCache{store: make(map[string][]byte)} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *memCache) DeleteByPattern(context.Context, string) error {
	c.store = make(map[string][]byte)
	return nil
}

func newMatchingForTest(users *mockUserRepo, enc *stubEncoder) (*Matching, *mockSessionRepo, *memCache) {
	sessions := &mockSessionRepo{}
	cache := newMemCache()
	embSvc := NewEmbeddingService(enc, newMemEmbeddingRepo())
	return NewMatchingUsecase(users, sessions, embSvc, cache, nil), sessions, cache
}

func TestMatching_FindMatchesByQuery_EmptyQuery(t *testing.T) {
	users := &mockUserRepo{users: []repository.User{{ID: uuid.New(), Skills: []string{"Go"}}}}
	uc, sessions, _ := newMatchingForTest(users, &stubEncoder{})

	items, err := uc.FindMatchesByQuery(context.Background(), MatchQueryInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", items)
	}
	if len(sessions.recorded) != 1 || sessions.recorded[0].ResultsCount != 0 {
		t.Fatalf("expected one recorded session with zero results, got %v", sessions.recorded)
	}
}

func TestMatching_FindMatchesByQuery_InvalidLimit(t *testing.T) {
	uc, _, _ := newMatchingForTest(&mockUserRepo{}, &stubEncoder{})

	for _, limit := range []int{-1, 101} {
		_, err := uc.FindMatchesByQuery(context.Background(), MatchQueryInput{
			Skills: []string{"Go"},
			Limit:  limit,
		})
		if !errors.Is(err, ErrInvalidLimit) {
			t.Fatalf("limit %d: expected ErrInvalidLimit, got %v", limit, err)
		}
	}
}

func TestMatching_FindMatchesByQuery_RanksPoolAndSkipsEmptyProfiles(t *testing.T) {
	userA := repository.User{ID: uuid.New(), FullName: "A", Skills: []string{"Go"}}
	userB := repository.User{ID: uuid.New(), FullName: "B", Skills: []string{"Go", "Python"}, Interests: []string{"AI"}}
	userC := repository.User{ID: uuid.New(), FullName: "C"} // no tags at all
	userD := repository.User{ID: uuid.New(), FullName: "D", Skills: []string{"Rust"}}
	users := &mockUserRepo{users: []repository.User{userA, userB, userC, userD}}
	uc, _, _ := newMatchingForTest(users, &stubEncoder{})

	items, err := uc.FindMatchesByQuery(context.Background(), MatchQueryInput{
		Skills:    []string{"Go", "Python"},
		Interests: []string{"AI"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Empty profiles are excluded; zero overlap is still ranked, last.
	if len(items) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(items))
	}
	if items[0].User.ID != userB.ID || items[1].User.ID != userA.ID || items[2].User.ID != userD.ID {
		t.Fatalf("unexpected order: %s, %s, %s",
			items[0].User.FullName, items[1].User.FullName, items[2].User.FullName)
	}
	if items[0].Score != 1.0 {
		t.Fatalf("expected perfect score for B, got %f", items[0].Score)
	}
	if items[2].Score != 0 {
		t.Fatalf("expected zero score for D, got %f", items[2].Score)
	}
}

func TestMatching_FindMatchesByQuery_CachesResults(t *testing.T) {
	users := &mockUserRepo{users: []repository.User{
		{ID: uuid.New(), Skills: []string{"Go"}},
	}}
	uc, sessions, _ := newMatchingForTest(users, &stubEncoder{})

	in := MatchQueryInput{Skills: []string{"Go"}}
	if _, err := uc.FindMatchesByQuery(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.FindMatchesByQuery(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if users.listCalls != 1 {
		t.Fatalf("expected second call served from cache, got %d list calls", users.listCalls)
	}
	if len(sessions.recorded) != 2 {
		t.Fatalf("expected both searches recorded, got %d", len(sessions.recorded))
	}
}

func TestMatching_FindMatchesByQuery_NoPasswordHashInResultsOrCache(t *testing.T) {
	u := repository.User{
		ID:           uuid.New(),
		Email:        "rowan@example.com",
		PasswordHash: "bcrypt-secret",
		Skills:       []string{"Go"},
	}
	users := &mockUserRepo{users: []repository.User{u}}
	uc, _, cache := newMatchingForTest(users, &stubEncoder{})

	items, err := uc.FindMatchesByQuery(context.Background(), MatchQueryInput{Skills: []string{"Go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(items))
	}
	if items[0].User.PasswordHash != "" {
		t.Fatalf("expected password hash cleared from results")
	}

	if len(cache.store) != 1 {
		t.Fatalf("expected result cached, got %d entries", len(cache.store))
	}
	for _, payload := range cache.store {
		if strings.Contains(string(payload), "bcrypt-secret") {
			t.Fatalf("password hash leaked into cached payload")
		}
	}
}

func TestMatching_FindMatches_UnknownUser(t *testing.T) {
	uc, _, _ := newMatchingForTest(&mockUserRepo{}, &stubEncoder{})

	_, err := uc.FindMatches(context.Background(), uuid.New(), 0)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMatching_FindMatches_ExcludesSubjectAndReusesEmbeddings(t *testing.T) {
	subject := repository.User{ID: uuid.New(), Skills: []string{"Go"}, Interests: []string{"AI"}}
	other := repository.User{ID: uuid.New(), Skills: []string{"Go"}, Interests: []string{"AI"}}
	users := &mockUserRepo{users: []repository.User{subject, other}}
	enc := &stubEncoder{}
	uc, _, _ := newMatchingForTest(users, enc)

	items, err := uc.FindMatches(context.Background(), subject.ID, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].User.ID != other.ID {
		t.Fatalf("expected only the other participant, got %v", items)
	}
	if enc.calls != 2 {
		t.Fatalf("expected one encode per participant, got %d", enc.calls)
	}

	// Identical vectors on both sides give a perfect score.
	if items[0].Score < 0.999 {
		t.Fatalf("expected score ~1.0, got %f", items[0].Score)
	}

	if _, err := uc.FindMatches(context.Background(), subject.ID, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if enc.calls != 2 {
		t.Fatalf("expected stored embeddings reused, got %d encode calls", enc.calls)
	}
}

func TestMatching_RefreshEmbedding_Recomputes(t *testing.T) {
	subject := repository.User{ID: uuid.New(), Skills: []string{"Go"}}
	users := &mockUserRepo{users: []repository.User{subject}}
	enc := &stubEncoder{}
	uc, _, _ := newMatchingForTest(users, enc)

	if _, err := uc.RefreshEmbedding(context.Background(), subject.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.RefreshEmbedding(context.Background(), subject.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if enc.calls != 2 {
		t.Fatalf("expected refresh to recompute every time, got %d encode calls", enc.calls)
	}
}

func TestMatching_AvailabilityOverlap(t *testing.T) {
	a := repository.User{ID: uuid.New(), Availability: map[string][]string{
		"monday": {"morning", "evening"},
	}}
	b := repository.User{ID: uuid.New(), Availability: map[string][]string{
		"monday": {"morning"},
	}}
	users := &mockUserRepo{users: []repository.User{a, b}}
	uc, _, _ := newMatchingForTest(users, &stubEncoder{})

	overlap, err := uc.AvailabilityOverlap(context.Background(), a.ID, b.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if overlap.Percentage != 0.5 {
		t.Fatalf("expected 0.5, got %f", overlap.Percentage)
	}
	if len(overlap.CommonSlots) != 1 || overlap.CommonSlots[0] != "monday_morning" {
		t.Fatalf("unexpected common slots: %v", overlap.CommonSlots)
	}

	_, err = uc.AvailabilityOverlap(context.Background(), a.ID, uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
