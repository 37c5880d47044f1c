package resolve

import (
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum similarity score for general fuzzy search.
const DefaultThreshold = 85

// Match is one scored match between a query name and a canonical name from
// the index. Score is in [0,100]; 100 means the strings are identical.
type Match struct {
	UID           int64  `json:"uid"`
	CanonicalName string `json:"matched_canonical_name"`
	InputName     string `json:"input_name"`
	Score         int    `json:"match_score"`
}

// Similarity computes a normalized Levenshtein ratio between two strings:
// 100 * (1 - distance / max(runelen(a), runelen(b))), rounded. The score is
// symmetric, identical strings score 100, and fully disjoint strings of
// equal length score 0.
func Similarity(a, b string) int {
	if a == b {
		return 100
	}
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	score := 100 - (100*dist+maxLen/2)/maxLen
	if score < 0 {
		score = 0
	}
	return score
}

// Matcher answers exact and fuzzy name queries against a NameIndex. It is
// stateless per query and safe for concurrent use.
type Matcher struct {
	index *NameIndex
}

// NewMatcher creates a Matcher over a built index.
func NewMatcher(index *NameIndex) *Matcher {
	return &Matcher{index: index}
}

// Index returns the underlying name index.
func (m *Matcher) Index() *NameIndex {
	return m.index
}

// ExactMatch normalizes the query and returns the candidate uids recorded
// under the resulting canonical name. A nil result means no match; unmatched
// input is never an error.
func (m *Matcher) ExactMatch(name string) []int64 {
	canonical := Normalize(name)
	if canonical == "" {
		return nil
	}
	return m.index.Lookup(canonical)
}

// FuzzyMatch scores the query against every canonical name in the index and
// returns all matches with score >= threshold, ordered by descending score,
// then canonical name, then uid. An empty result means nothing cleared the
// threshold.
func (m *Matcher) FuzzyMatch(name string, threshold int) []Match {
	canonical := Normalize(name)
	if canonical == "" {
		return nil
	}

	var matches []Match
	for _, indexed := range m.index.Names() {
		score := Similarity(canonical, indexed)
		if score < threshold {
			continue
		}
		for _, uid := range m.index.Lookup(indexed) {
			matches = append(matches, Match{
				UID:           uid,
				CanonicalName: indexed,
				InputName:     name,
				Score:         score,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].CanonicalName != matches[j].CanonicalName {
			return matches[i].CanonicalName < matches[j].CanonicalName
		}
		return matches[i].UID < matches[j].UID
	})
	return matches
}
