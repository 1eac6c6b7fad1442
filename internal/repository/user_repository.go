package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"quicksync/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Bio          string
	Skills       []string
	Interests    []string
	Availability map[string][]string
	EventTags    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ProfileUpdate struct {
	FullName     string
	Bio          string
	Skills       []string
	Interests    []string
	Availability map[string][]string
	EventTags    []string
}

type UserRepository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)
	ListExcluding(ctx context.Context, excludeID uuid.UUID) ([]User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p ProfileUpdate) (User, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, COALESCE(full_name, ''), COALESCE(bio, ''),
	COALESCE(skills, '{}'), COALESCE(interests, '{}'), COALESCE(availability, '{}'::jsonb),
	COALESCE(event_tags, '{}'), created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u User) error {
	availability, err := encodeAvailability(u.Availability)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, bio, skills, interests, availability, event_tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Bio,
		tagsOrEmpty(u.Skills), tagsOrEmpty(u.Interests), availability, tagsOrEmpty(u.EventTags),
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
}

func (r *PostgresUserRepository) ListExcluding(ctx context.Context, excludeID uuid.UUID) ([]User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE id <> $1 ORDER BY created_at ASC`, excludeID)
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p ProfileUpdate) (User, error) {
	availability, err := encodeAvailability(p.Availability)
	if err != nil {
		return User{}, err
	}

	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET full_name = $1, bio = $2, skills = $3, interests = $4, availability = $5, event_tags = $6, updated_at = now()
		 WHERE id = $7`,
		p.FullName, p.Bio, tagsOrEmpty(p.Skills), tagsOrEmpty(p.Interests), availability, tagsOrEmpty(p.EventTags), id,
	)
	if err != nil {
		return User{}, err
	}
	if rowsAffected == 0 {
		return User{}, ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresUserRepository) list(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUserFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row database.Row) (User, error) {
	u, err := scanUserFrom(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func scanUserFrom(s scanner) (User, error) {
	var u User
	var availability []byte
	if err := s.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Bio,
		&u.Skills, &u.Interests, &availability, &u.EventTags,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return User{}, err
	}
	u.Availability = decodeAvailability(availability)
	return u, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func encodeAvailability(availability map[string][]string) ([]byte, error) {
	if availability == nil {
		availability = map[string][]string{}
	}
	return json.Marshal(availability)
}

// decodeAvailability tolerates hand-edited JSON: day entries whose
// value is not a list of strings are dropped rather than failing the
// whole row.
func decodeAvailability(raw []byte) map[string][]string {
	out := map[string][]string{}
	if len(raw) == 0 {
		return out
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return out
	}
	for day, v := range loose {
		var slots []string
		if err := json.Unmarshal(v, &slots); err != nil {
			continue
		}
		out[day] = slots
	}
	return out
}
