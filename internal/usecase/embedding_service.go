package usecase

import (
	"context"
	"errors"
	"strings"

	"quicksync/internal/encoder"
	"quicksync/internal/repository"
)

// EmbeddingService owns the three cached vectors per participant. It
// is the only core component that writes through to storage.
type EmbeddingService struct {
	encoder    encoder.TextEncoder
	embeddings repository.EmbeddingRepository
}

func NewEmbeddingService(enc encoder.TextEncoder, embeddings repository.EmbeddingRepository) *EmbeddingService {
	return &EmbeddingService{encoder: enc, embeddings: embeddings}
}

// GetOrCompute returns the cached record when one exists; otherwise it
// encodes the user's skills, interests, and combined text in a single
// batched call, stores the record, and returns it.
func (s *EmbeddingService) GetOrCompute(ctx context.Context, u repository.User) (repository.UserEmbedding, error) {
	existing, err := s.embeddings.FindByUserID(ctx, u.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrEmbeddingNotFound) {
		return repository.UserEmbedding{}, err
	}
	return s.compute(ctx, u)
}

// Refresh always recomputes and fully overwrites the record, even
// when one exists.
func (s *EmbeddingService) Refresh(ctx context.Context, u repository.User) (repository.UserEmbedding, error) {
	return s.compute(ctx, u)
}

func (s *EmbeddingService) compute(ctx context.Context, u repository.User) (repository.UserEmbedding, error) {
	skillsText := strings.Join(u.Skills, " ")
	interestsText := strings.Join(u.Interests, " ")
	combinedText := strings.TrimSpace(skillsText + " " + interestsText)

	// One batched encoder call for all three texts. An encoder failure
	// propagates untouched and nothing is stored.
	vectors, err := s.encoder.Encode(ctx, []string{skillsText, interestsText, combinedText})
	if err != nil {
		return repository.UserEmbedding{}, err
	}
	if len(vectors) != 3 {
		return repository.UserEmbedding{}, errors.New("encoder returned unexpected vector count")
	}

	return s.embeddings.Upsert(ctx, repository.UserEmbedding{
		UserID:             u.ID,
		SkillsEmbedding:    vectors[0],
		InterestsEmbedding: vectors[1],
		CombinedEmbedding:  vectors[2],
	})
}
