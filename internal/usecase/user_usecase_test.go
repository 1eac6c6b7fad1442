package usecase

import (
	"context"
	"errors"
	"testing"

	"quicksync/internal/repository"

	"github.com/google/uuid"
)

type profileUserRepo struct {
	mockUserRepo
	lastUpdate repository.ProfileUpdate
}

func (m *profileUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, p repository.ProfileUpdate) (repository.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			m.lastUpdate = p
			u.FullName = p.FullName
			u.Skills = p.Skills
			u.Interests = p.Interests
			return u, nil
		}
	}
	return repository.User{}, repository.ErrUserNotFound
}

func TestUserService_UpdateProfile_CleansTagsAndInvalidatesCache(t *testing.T) {
	u := repository.User{ID: uuid.New(), Email: "sky@example.com", PasswordHash: "secret"}
	repo := &profileUserRepo{mockUserRepo: mockUserRepo{users: []repository.User{u}}}
	cache := newMemCache()
	cache.store["match:query:stale"] = []byte("[]")

	svc := NewUserUsecase(repo, cache, nil)

	updated, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{
		FullName: " Sky River ",
		Skills:   []string{" Go ", "", "Python"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.PasswordHash != "" {
		t.Fatalf("expected password hash cleared")
	}
	if repo.lastUpdate.FullName != "Sky River" {
		t.Fatalf("expected trimmed name, got %q", repo.lastUpdate.FullName)
	}
	if len(repo.lastUpdate.Skills) != 2 || repo.lastUpdate.Skills[0] != "Go" {
		t.Fatalf("expected cleaned skills, got %v", repo.lastUpdate.Skills)
	}
	if len(cache.store) != 0 {
		t.Fatalf("expected cached match results invalidated")
	}
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	svc := NewUserUsecase(&mockUserRepo{}, newMemCache(), nil)
	_, err := svc.GetProfile(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
