package usecase

import (
	"context"
	"errors"
	"log"

	"quicksync/internal/domain/matching"
	"quicksync/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidLimit = errors.New("invalid limit")
)

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 100
)

type MatchQueryInput struct {
	Skills    []string
	Interests []string
	Limit     int
}

// MatchItem pairs a candidate's profile with the four float scores.
// Scores stay in float space here; the HTTP layer converts to integer
// percentages.
type MatchItem struct {
	User                repository.User
	SkillsSimilarity    float64
	InterestsSimilarity float64
	CombinedSimilarity  float64
	Score               float64
}

type MatchingUsecase interface {
	FindMatchesByQuery(ctx context.Context, in MatchQueryInput) ([]MatchItem, error)
	FindMatches(ctx context.Context, userID uuid.UUID, limit int) ([]MatchItem, error)
	RefreshEmbedding(ctx context.Context, userID uuid.UUID) (repository.UserEmbedding, error)
	AvailabilityOverlap(ctx context.Context, userA, userB uuid.UUID) (matching.AvailabilityOverlap, error)
}

type Matching struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	embeddings *EmbeddingService
	cache      MatchCache
	logger     *log.Logger
}

func NewMatchingUsecase(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	embeddings *EmbeddingService,
	cache MatchCache,
	logger *log.Logger,
) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	return &Matching{users: users, sessions: sessions, embeddings: embeddings, cache: cache, logger: logger}
}

// FindMatchesByQuery is the anonymous lexical path: raw query tags
// against every candidate's tags via asymmetric overlap. No identity
// and no embeddings involved.
func (m *Matching) FindMatchesByQuery(ctx context.Context, in MatchQueryInput) ([]MatchItem, error) {
	limit, err := normalizeLimit(in.Limit)
	if err != nil {
		return nil, err
	}

	// Nothing to search for: defined empty result, not an error.
	if len(in.Skills) == 0 && len(in.Interests) == 0 {
		m.recordSession(ctx, in, 0)
		return []MatchItem{}, nil
	}

	cacheKey := MatchQueryCacheKey(in.Skills, in.Interests, limit)
	if m.cache != nil {
		var cached []MatchItem
		if hit, err := m.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			m.recordSession(ctx, in, len(cached))
			return cached, nil
		}
	}

	pool, err := m.users.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, 0, len(pool))
	byID := make(map[uuid.UUID]repository.User, len(pool))
	for _, u := range pool {
		byID[u.ID] = u
		candidates = append(candidates, matching.Candidate{
			UserID:    u.ID,
			Skills:    u.Skills,
			Interests: u.Interests,
		})
	}

	ranked := matching.RankByQuery(matching.Query{
		Skills:    in.Skills,
		Interests: in.Interests,
		Limit:     limit,
	}, candidates)

	// Sanitized before caching: password hashes must not reach redis.
	items := make([]MatchItem, 0, len(ranked))
	for _, s := range ranked {
		items = append(items, MatchItem{
			User:                sanitizeUser(byID[s.UserID]),
			SkillsSimilarity:    s.SkillsSimilarity,
			InterestsSimilarity: s.InterestsSimilarity,
			CombinedSimilarity:  s.CombinedSimilarity,
			Score:               s.Score,
		})
	}

	if m.cache != nil {
		if err := m.cache.SetJSON(ctx, cacheKey, items, 0); err != nil {
			m.logger.Printf("match cache set failed | key=%s err=%v", cacheKey, err)
		}
	}
	m.recordSession(ctx, in, len(items))

	return items, nil
}

// FindMatches is the authenticated semantic path: the subject's cached
// embeddings against every other candidate's, computing missing
// embeddings on demand.
func (m *Matching) FindMatches(ctx context.Context, userID uuid.UUID, limit int) ([]MatchItem, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	subject, err := m.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subjectEmb, err := m.embeddings.GetOrCompute(ctx, subject)
	if err != nil {
		return nil, err
	}
	subjectVectors := toEmbeddings(subjectEmb)

	pool, err := m.users.ListExcluding(ctx, userID)
	if err != nil {
		return nil, err
	}

	scored := make([]matching.Scored, 0, len(pool))
	byID := make(map[uuid.UUID]repository.User, len(pool))
	for _, candidate := range pool {
		candidateEmb, err := m.embeddings.GetOrCompute(ctx, candidate)
		if err != nil {
			return nil, err
		}

		skillsSim, interestsSim, combinedSim, score := matching.ScoreSemantic(subjectVectors, toEmbeddings(candidateEmb))
		byID[candidate.ID] = candidate
		scored = append(scored, matching.Scored{
			UserID:              candidate.ID,
			SkillsSimilarity:    skillsSim,
			InterestsSimilarity: interestsSim,
			CombinedSimilarity:  combinedSim,
			Score:               score,
		})
	}

	ranked := matching.RankBySimilarity(scored, limit)

	items := make([]MatchItem, 0, len(ranked))
	for _, s := range ranked {
		items = append(items, MatchItem{
			User:                sanitizeUser(byID[s.UserID]),
			SkillsSimilarity:    s.SkillsSimilarity,
			InterestsSimilarity: s.InterestsSimilarity,
			CombinedSimilarity:  s.CombinedSimilarity,
			Score:               s.Score,
		})
	}
	return items, nil
}

func (m *Matching) RefreshEmbedding(ctx context.Context, userID uuid.UUID) (repository.UserEmbedding, error) {
	u, err := m.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.UserEmbedding{}, ErrUserNotFound
		}
		return repository.UserEmbedding{}, err
	}
	return m.embeddings.Refresh(ctx, u)
}

func (m *Matching) AvailabilityOverlap(ctx context.Context, userA, userB uuid.UUID) (matching.AvailabilityOverlap, error) {
	a, err := m.users.GetByID(ctx, userA)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return matching.AvailabilityOverlap{}, ErrUserNotFound
		}
		return matching.AvailabilityOverlap{}, err
	}
	b, err := m.users.GetByID(ctx, userB)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return matching.AvailabilityOverlap{}, ErrUserNotFound
		}
		return matching.AvailabilityOverlap{}, err
	}

	return matching.Overlap(a.Availability, b.Availability), nil
}

// recordSession logs the query for analytics. Best effort only: a
// failed insert never fails the search.
func (m *Matching) recordSession(ctx context.Context, in MatchQueryInput, results int) {
	if m.sessions == nil {
		return
	}
	err := m.sessions.Record(ctx, repository.MatchingSession{
		ID:             uuid.New(),
		QuerySkills:    in.Skills,
		QueryInterests: in.Interests,
		ResultsCount:   results,
	})
	if err != nil {
		m.logger.Printf("matching session record failed | err=%v", err)
	}
}

func normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return defaultMatchLimit, nil
	}
	if limit < 0 || limit > maxMatchLimit {
		return 0, ErrInvalidLimit
	}
	return limit, nil
}

func toEmbeddings(e repository.UserEmbedding) matching.Embeddings {
	return matching.Embeddings{
		Skills:    e.SkillsEmbedding,
		Interests: e.InterestsEmbedding,
		Combined:  e.CombinedEmbedding,
	}
}
