package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"quicksync/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrEmbeddingNotFound = errors.New("embedding not found")

// UserEmbedding is the one-per-user record of the three cached
// vectors. All three share the encoder's fixed dimensionality.
type UserEmbedding struct {
	UserID             uuid.UUID
	SkillsEmbedding    []float64
	InterestsEmbedding []float64
	CombinedEmbedding  []float64
	UpdatedAt          time.Time
}

type EmbeddingRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (UserEmbedding, error)
	Upsert(ctx context.Context, e UserEmbedding) (UserEmbedding, error)
}

type PostgresEmbeddingRepository struct {
	db database.DB
}

func NewPostgresEmbeddingRepository(db database.DB) *PostgresEmbeddingRepository {
	return &PostgresEmbeddingRepository{db: db}
}

func (r *PostgresEmbeddingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (UserEmbedding, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, skills_embedding, interests_embedding, combined_embedding, updated_at
		 FROM user_embeddings
		 WHERE user_id = $1`,
		userID,
	)

	var e UserEmbedding
	if err := row.Scan(&e.UserID, &e.SkillsEmbedding, &e.InterestsEmbedding, &e.CombinedEmbedding, &e.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserEmbedding{}, ErrEmbeddingNotFound
		}
		return UserEmbedding{}, err
	}
	return e, nil
}

// Upsert fully overwrites the record. Refreshes replace all three
// vectors at once; there is no partial merge.
func (r *PostgresEmbeddingRepository) Upsert(ctx context.Context, e UserEmbedding) (UserEmbedding, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_embeddings (user_id, skills_embedding, interests_embedding, combined_embedding, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET skills_embedding = EXCLUDED.skills_embedding,
		     interests_embedding = EXCLUDED.interests_embedding,
		     combined_embedding = EXCLUDED.combined_embedding,
		     updated_at = now()`,
		e.UserID, e.SkillsEmbedding, e.InterestsEmbedding, e.CombinedEmbedding,
	)
	if err != nil {
		return UserEmbedding{}, err
	}
	return r.FindByUserID(ctx, e.UserID)
}
