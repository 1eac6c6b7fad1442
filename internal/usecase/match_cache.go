package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// MatchCache is the lexical-search result cache. Implementations may
// be unavailable; every method degrades to a miss/no-op in that case.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const matchQueryKeyPrefix = "match:query:"

// MatchQueryPattern matches every cached lexical result; used to
// invalidate after any profile change.
const MatchQueryPattern = matchQueryKeyPrefix + "*"

type matchQueryKeyInput struct {
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Limit     int      `json:"limit"`
}

// MatchQueryCacheKey hashes the normalized query. Tag order and
// surrounding whitespace do not change the key; tag case does, since
// matching itself is case-sensitive.
func MatchQueryCacheKey(skills, interests []string, limit int) string {
	in := matchQueryKeyInput{
		Skills:    normalizeQueryTags(skills),
		Interests: normalizeQueryTags(interests),
		Limit:     limit,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return matchQueryKeyPrefix + hex.EncodeToString(sum[:])
}

func normalizeQueryTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
