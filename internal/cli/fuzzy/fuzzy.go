// Package fuzzy provides approximate matching of REPL command names, so a
// slightly mistyped ":lokup" still resolves to ":lookup". Adapted from the
// teacher's word-completion fuzzy scorer (src/fuzzy/fuzzy.go): the same
// subsequence-matching core, with the frequency bonus dropped since
// commands carry no usage frequency.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher resolves user input against a fixed set of command names.
type Matcher struct {
	commands []string
}

// NewMatcher builds a Matcher over the given command names.
func NewMatcher(commands []string) *Matcher {
	list := make([]string, len(commands))
	copy(list, commands)
	return &Matcher{commands: list}
}

// Resolve returns the best-matching command name for input, and whether
// the match was exact (false) or fuzzy (true). Inputs shorter than two
// characters are never corrected.
func (m *Matcher) Resolve(input string) (string, bool) {
	if len(input) < 2 {
		return input, false
	}

	lowerInput := strings.ToLower(input)
	for _, cmd := range m.commands {
		if strings.ToLower(cmd) == lowerInput {
			return cmd, false
		}
	}

	matches := m.findMatches(lowerInput)
	for i := range matches {
		lengthDiff := abs(len(matches[i].Str) - len(input))
		matches[i].Score -= lengthDiff * 2
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > 0 {
		return matches[0].Str, true
	}
	return input, false
}

const (
	firstCharMatchBonus            = 15
	adjacentMatchBonus             = 10
	separatorMatchBonus            = 12
	camelCaseMatchBonus            = 12
	unmatchedLeadingCharPenalty    = -3
	maxUnmatchedLeadingCharPenalty = -9
)

type match struct {
	Str            string
	Score          int
	MatchedIndexes []int
}

func (m *Matcher) findMatches(pattern string) []match {
	if len(pattern) == 0 {
		return nil
	}

	var matches []match
	patternRunes := []rune(pattern)

	for _, candidate := range m.commands {
		candidateLower := strings.ToLower(candidate)
		if len(pattern) > 1 && len(candidateLower) > 0 && pattern[0] != candidateLower[0] {
			continue
		}

		mt := match{Str: candidate, MatchedIndexes: make([]int, 0, len(patternRunes))}
		if runFuzzyMatch(patternRunes, candidateLower, &mt) {
			penalty := len(mt.MatchedIndexes) - len(candidateLower)
			mt.Score += penalty
			matches = append(matches, mt)
		}
	}
	return matches
}

func runFuzzyMatch(pattern []rune, candidate string, mt *match) bool {
	candidateRunes := []rune(candidate)

	var last rune
	var lastIndex int
	var currAdjacentMatchBonus int
	patternIndex := 0
	bestScore := -1
	matchedIndex := -1

	for i := 0; i < len(candidateRunes); i++ {
		curr := candidateRunes[i]

		if equalFold(curr, pattern[patternIndex]) {
			score := 0
			if i == 0 {
				score += firstCharMatchBonus
			}
			if i > 0 && unicode.IsLower(last) && unicode.IsUpper(curr) {
				score += camelCaseMatchBonus
			}
			if i > 0 && isSeparator(last) {
				score += separatorMatchBonus
			}
			if len(mt.MatchedIndexes) > 0 {
				lastMatch := mt.MatchedIndexes[len(mt.MatchedIndexes)-1]
				bonus := 0
				if lastIndex == lastMatch {
					bonus = currAdjacentMatchBonus*2 + adjacentMatchBonus
					currAdjacentMatchBonus = bonus
				} else {
					currAdjacentMatchBonus = 0
				}
				score += bonus
			}
			if score > bestScore {
				bestScore = score
				matchedIndex = i
			}

			var nextPatternRune rune
			if patternIndex < len(pattern)-1 {
				nextPatternRune = pattern[patternIndex+1]
			}
			var nextCandidateRune rune
			if i < len(candidateRunes)-1 {
				nextCandidateRune = candidateRunes[i+1]
			}

			if equalFold(nextPatternRune, nextCandidateRune) || nextCandidateRune == 0 {
				if matchedIndex > -1 {
					if len(mt.MatchedIndexes) == 0 {
						penalty := matchedIndex * unmatchedLeadingCharPenalty
						bestScore += max(penalty, maxUnmatchedLeadingCharPenalty)
					}
					mt.Score += bestScore
					mt.MatchedIndexes = append(mt.MatchedIndexes, matchedIndex)
					bestScore = -1
					patternIndex++
				}
			}
		}

		last = curr
		lastIndex = i

		if patternIndex >= len(pattern) {
			return true
		}
	}

	return patternIndex >= len(pattern)
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.' || r == '/'
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}
	return strings.EqualFold(string(a), string(b))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
