package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"quicksync/internal/repository"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	FullName     string
	Bio          string
	Skills       []string
	Interests    []string
	Availability map[string][]string
	EventTags    []string
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (repository.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (repository.User, error)
	ListCandidates(ctx context.Context, excludeID uuid.UUID) ([]repository.User, error)
}

type UserService struct {
	users  repository.UserRepository
	cache  MatchCache
	logger *log.Logger
}

func NewUserUsecase(users repository.UserRepository, cache MatchCache, logger *log.Logger) *UserService {
	if logger == nil {
		logger = log.Default()
	}
	return &UserService{users: users, cache: cache, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, ErrUserNotFound
		}
		return repository.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (repository.User, error) {
	update := repository.ProfileUpdate{
		FullName:     strings.TrimSpace(in.FullName),
		Bio:          strings.TrimSpace(in.Bio),
		Skills:       cleanTags(in.Skills),
		Interests:    cleanTags(in.Interests),
		Availability: in.Availability,
		EventTags:    cleanTags(in.EventTags),
	}

	u, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, ErrUserNotFound
		}
		return repository.User{}, ErrInternal
	}

	// Cached lexical results rank against the old tags now; drop them.
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, MatchQueryPattern); err != nil {
			s.logger.Printf("match cache invalidation failed | err=%v", err)
		}
	}

	return sanitizeUser(u), nil
}

func (s *UserService) ListCandidates(ctx context.Context, excludeID uuid.UUID) ([]repository.User, error) {
	users, err := s.users.ListExcluding(ctx, excludeID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]repository.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}
	return out, nil
}

// cleanTags trims whitespace and drops empties; tag case is preserved
// because matching is case-sensitive.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
