package matching

// Fixed weights for the semantic score: the combined vector dominates,
// skills outweigh interests.
const (
	weightCombined  = 0.5
	weightSkills    = 0.3
	weightInterests = 0.2
)

// Embeddings holds the three cached vectors for one participant. All
// three have the encoder's fixed output width.
type Embeddings struct {
	Skills    []float64
	Interests []float64
	Combined  []float64
}

// ScoreSemantic compares a subject's embeddings against one
// candidate's via cosine similarity and blends the three sub-scores
// into the weighted overall score.
func ScoreSemantic(subject, candidate Embeddings) (skillsSim, interestsSim, combinedSim, score float64) {
	skillsSim = CosineSimilarity(subject.Skills, candidate.Skills)
	interestsSim = CosineSimilarity(subject.Interests, candidate.Interests)
	combinedSim = CosineSimilarity(subject.Combined, candidate.Combined)

	score = weightCombined*combinedSim + weightSkills*skillsSim + weightInterests*interestsSim
	return skillsSim, interestsSim, combinedSim, score
}

// RankBySimilarity finalizes a semantic scan: stable descending sort,
// truncated to limit.
func RankBySimilarity(results []Scored, limit int) []Scored {
	return sortAndTruncate(results, limit)
}
