package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"quicksync/internal/pkg/jwt"
	"quicksync/internal/repository"

	"github.com/google/uuid"
)

type memAuthUserRepo struct {
	byID    map[uuid.UUID]repository.User
	byEmail map[string]repository.User
}

func newMemAuthUserRepo() *memAuthUserRepo {
	return &memAuthUserRepo{
		byID:    make(map[uuid.UUID]repository.User),
		byEmail: make(map[string]repository.User),
	}
}

func (m *memAuthUserRepo) Create(_ context.Context, u repository.User) error {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memAuthUserRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memAuthUserRepo) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memAuthUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memAuthUserRepo) List(context.Context) ([]repository.User, error) { return nil, nil }
func (m *memAuthUserRepo) ListExcluding(context.Context, uuid.UUID) ([]repository.User, error) {
	return nil, nil
}
func (m *memAuthUserRepo) UpdateProfile(context.Context, uuid.UUID, repository.ProfileUpdate) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}

func newAuthForTest() (*Auth, *memAuthUserRepo) {
	repo := newMemAuthUserRepo()
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthUsecase(repo, jwtSvc), repo
}

func TestAuth_Register_And_Login(t *testing.T) {
	auth, _ := newAuthForTest()

	u, access, refresh, err := auth.Register(context.Background(), RegisterInput{
		Email:    "  Casey.Riley@Example.Com ",
		Password: "hunter22!",
		FullName: "Casey Riley",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "casey.riley@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected password hash cleared in response")
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected token pair")
	}

	_, _, _, err = auth.Register(context.Background(), RegisterInput{
		Email:    "casey.riley@example.com",
		Password: "hunter22!",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	got, _, _, err := auth.Login(context.Background(), LoginInput{
		Email:    "casey.riley@example.com",
		Password: "hunter22!",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected same user back")
	}

	_, _, _, err = auth.Login(context.Background(), LoginInput{
		Email:    "casey.riley@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_Register_InvalidInput(t *testing.T) {
	auth, _ := newAuthForTest()

	cases := []RegisterInput{
		{Email: "no-at-sign", Password: "hunter22!"},
		{Email: "ok@example.com", Password: "short"},
	}
	for _, in := range cases {
		if _, _, _, err := auth.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestAuth_Refresh(t *testing.T) {
	auth, _ := newAuthForTest()

	_, access, refresh, err := auth.Register(context.Background(), RegisterInput{
		Email:    "sage@example.com",
		Password: "hunter22!",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	newAccess, newRefresh, err := auth.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatalf("expected fresh token pair")
	}

	// An access token must not be accepted on the refresh path.
	if _, _, err := auth.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	if _, _, err := auth.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
