package dto

import (
	"time"

	"github.com/google/uuid"
)

// MatchResultResponse is one ranked row: the candidate's public
// profile plus the four scores in integer percentages. This is the
// only place scores leave float space.
type MatchResultResponse struct {
	ID                  uuid.UUID `json:"id"`
	FullName            string    `json:"full_name"`
	Bio                 string    `json:"bio"`
	Skills              []string  `json:"skills"`
	Interests           []string  `json:"interests"`
	SkillsSimilarity    int       `json:"skills_similarity"`
	InterestsSimilarity int       `json:"interests_similarity"`
	CombinedSimilarity  int       `json:"combined_similarity"`
	Score               int       `json:"score"`
}

type AvailabilityOverlapResponse struct {
	OverlapPercentage float64  `json:"overlap_percentage"`
	CommonTimes       []string `json:"common_times"`
}

type EmbeddingRefreshResponse struct {
	Refreshed bool      `json:"refreshed"`
	Dimension int       `json:"dimension"`
	UpdatedAt time.Time `json:"updated_at"`
}
