package technique

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoMatch indicates that no catalog technique scored above zero for a
// description. It is a valid terminal outcome, not a fault.
var ErrNoMatch = errors.New("no matching technique")

// Match is the result of mapping a description onto the catalog.
type Match struct {
	// Technique is the matched catalog entry.
	Technique Technique `json:"technique"`

	// Score is the non-negative match score (keyword overlap, plus a
	// fixed bonus when the technique name appears verbatim).
	Score int `json:"score"`

	// MatchedKeywords lists the description tokens found in the
	// technique's keyword set, sorted.
	MatchedKeywords []string `json:"matched_keywords"`
}

// nameBonus is added when the full technique name appears in the description.
const nameBonus = 2

// Mapper scores threat descriptions against a read-only technique catalog.
// Mapping is deterministic and idempotent: the same description always yields
// the same match, and ties resolve to the lexicographically smallest ID.
type Mapper struct {
	catalog *Catalog
}

// NewMapper creates a mapper over the given catalog. The catalog is injected
// rather than loaded globally so mapping stays pure and testable.
func NewMapper(catalog *Catalog) *Mapper {
	return &Mapper{catalog: catalog}
}

// Catalog returns the catalog the mapper scores against.
func (m *Mapper) Catalog() *Catalog {
	return m.catalog
}

// Map returns the best-scoring technique for the description, or ErrNoMatch
// when every technique scores zero.
func (m *Mapper) Map(description string) (Match, error) {
	matches := m.score(description)
	if len(matches) == 0 {
		return Match{}, ErrNoMatch
	}
	return matches[0], nil
}

// TopMatches returns up to n best-scoring techniques in descending score
// order (ties ordered by ID). Returns an empty slice when nothing matches.
func (m *Mapper) TopMatches(description string, n int) []Match {
	matches := m.score(description)
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches
}

// score computes all positive-score matches, sorted by score descending then
// technique ID ascending.
func (m *Mapper) score(description string) []Match {
	tokens := Tokenize(description)
	normalized := strings.ToLower(description)

	var matches []Match
	for _, t := range m.catalog.Techniques() {
		var matched []string
		for _, kw := range t.Keywords {
			if _, ok := tokens[kw]; ok {
				matched = append(matched, kw)
			}
		}

		score := len(matched)
		if strings.Contains(normalized, strings.ToLower(t.Name)) {
			score += nameBonus
		}
		if score == 0 {
			continue
		}

		sort.Strings(matched)
		matches = append(matches, Match{
			Technique:       t,
			Score:           score,
			MatchedKeywords: matched,
		})
	}

	// Stable ranking: score descending, then ID ascending. Techniques()
	// already iterates in ID order, so SliceStable preserves the ID
	// tie-break.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Tokenize splits a description into a set of lowercase word tokens.
// Letters, digits, and internal hyphens are kept; all other runes act as
// separators.
func Tokenize(s string) map[string]struct{} {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, s)

	tokens := make(map[string]struct{})
	for _, field := range strings.Fields(mapped) {
		field = strings.Trim(field, "-")
		if field != "" {
			tokens[field] = struct{}{}
		}
	}
	return tokens
}
