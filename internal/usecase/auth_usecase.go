package usecase

import (
	"context"
	"errors"
	"strings"

	"quicksync/internal/pkg/jwt"
	"quicksync/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (repository.User, string, string, error)
	Login(ctx context.Context, in LoginInput) (repository.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	users repository.UserRepository
	jwt   jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, jwt: jwtSvc}
}

func (a *Auth) Register(ctx context.Context, in RegisterInput) (repository.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return repository.User{}, "", "", ErrInvalidInput
	}

	exists, err := a.users.ExistsByEmail(ctx, email)
	if err != nil {
		return repository.User{}, "", "", ErrInternal
	}
	if exists {
		return repository.User{}, "", "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, "", "", ErrInternal
	}

	u := repository.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
	}
	if err := a.users.Create(ctx, u); err != nil {
		if exists, exErr := a.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return repository.User{}, "", "", ErrEmailAlreadyRegistered
		}
		return repository.User{}, "", "", ErrInternal
	}

	created, err := a.users.GetByID(ctx, u.ID)
	if err != nil {
		return repository.User{}, "", "", ErrInternal
	}

	access, refresh, err := a.issueTokens(created)
	if err != nil {
		return repository.User{}, "", "", ErrInternal
	}
	return sanitizeUser(created), access, refresh, nil
}

func (a *Auth) Login(ctx context.Context, in LoginInput) (repository.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return repository.User{}, "", "", ErrInvalidCredentials
	}

	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, "", "", ErrInvalidCredentials
		}
		return repository.User{}, "", "", ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return repository.User{}, "", "", ErrInvalidCredentials
	}

	access, refresh, err := a.issueTokens(u)
	if err != nil {
		return repository.User{}, "", "", ErrInternal
	}
	return sanitizeUser(u), access, refresh, nil
}

func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := a.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !a.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	u, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	return a.issueTokens(u)
}

func (a *Auth) issueTokens(u repository.User) (string, string, error) {
	access, err := a.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := a.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func isValidPassword(password string) bool {
	return len(password) >= 8
}

func sanitizeUser(u repository.User) repository.User {
	u.PasswordHash = ""
	return u
}
