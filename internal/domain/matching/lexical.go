package matching

import (
	"sort"

	"github.com/google/uuid"
)

// Candidate is the read-only slice of a participant profile the
// engine scores against. Skills and interests are case-sensitive tags
// exactly as the participant entered them.
type Candidate struct {
	UserID    uuid.UUID
	Skills    []string
	Interests []string
}

type Query struct {
	Skills    []string
	Interests []string
	Limit     int
}

// Scored carries the per-candidate similarity breakdown. All values
// stay in float space; percentage conversion happens at the HTTP
// boundary only.
type Scored struct {
	UserID              uuid.UUID
	SkillsSimilarity    float64
	InterestsSimilarity float64
	CombinedSimilarity  float64
	Score               float64
}

// RankByQuery scores the pool against raw query tags using asymmetric
// overlap. An empty query returns no results. Candidates without any
// skill or interest tags are excluded rather than scored zero, so
// empty profiles cannot pad the ranking in tie-break order.
func RankByQuery(q Query, pool []Candidate) []Scored {
	if len(q.Skills) == 0 && len(q.Interests) == 0 {
		return []Scored{}
	}

	results := make([]Scored, 0, len(pool))
	for _, c := range pool {
		if len(c.Skills) == 0 && len(c.Interests) == 0 {
			continue
		}

		skillsSim := AsymmetricOverlap(q.Skills, c.Skills)
		interestsSim := AsymmetricOverlap(q.Interests, c.Interests)

		var combined float64
		switch {
		case len(q.Skills) > 0 && len(q.Interests) > 0:
			combined = (skillsSim + interestsSim) / 2
		case len(q.Skills) > 0:
			combined = skillsSim
		default:
			combined = interestsSim
		}

		results = append(results, Scored{
			UserID:              c.UserID,
			SkillsSimilarity:    skillsSim,
			InterestsSimilarity: interestsSim,
			CombinedSimilarity:  combined,
			Score:               combined,
		})
	}

	return sortAndTruncate(results, q.Limit)
}

// sortAndTruncate orders by descending score and cuts to limit. The
// sort must be stable: ties keep pool encounter order, which is the
// only tie-break the engine defines.
func sortAndTruncate(results []Scored, limit int) []Scored {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
