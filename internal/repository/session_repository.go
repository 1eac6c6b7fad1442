package repository

import (
	"context"

	"quicksync/internal/database"

	"github.com/google/uuid"
)

// MatchingSession is an analytics row logged per lexical search.
// UserID is nil for anonymous queries.
type MatchingSession struct {
	ID             uuid.UUID
	UserID         *uuid.UUID
	QuerySkills    []string
	QueryInterests []string
	ResultsCount   int
}

type SessionRepository interface {
	Record(ctx context.Context, s MatchingSession) error
}

type PostgresSessionRepository struct {
	db database.DB
}

func NewPostgresSessionRepository(db database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Record(ctx context.Context, s MatchingSession) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO matching_sessions (id, user_id, query_skills, query_interests, results_count)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, tagsOrEmpty(s.QuerySkills), tagsOrEmpty(s.QueryInterests), s.ResultsCount,
	)
	return err
}
