package domain

import "strings"

// MatchThreshold is the score a candidate must exceed to appear in search results.
const MatchThreshold = 0.3

// Score rates how well query matches candidate, in the range [0, 1].
//
// Both strings are lower-cased before comparison. An empty query matches
// everything, and a candidate containing the query verbatim scores 1.
// Otherwise candidate is scanned once from left to right: every character
// equal to the next unmatched query character counts as a match. The score
// is the fraction of query characters matched in order.
func Score(query, candidate string) float64 {
	if query == "" {
		return 1
	}

	q := strings.ToLower(query)
	c := strings.ToLower(candidate)
	if strings.Contains(c, q) {
		return 1
	}

	needle := []rune(q)
	matched := 0
	for _, r := range c {
		if matched == len(needle) {
			break
		}
		if r == needle[matched] {
			matched++
		}
	}

	return float64(matched) / float64(len(needle))
}

// MatchPositions returns the rune offsets in candidate that Score counted
// as matches. A verbatim substring match reports its contiguous run.
// Used for highlighting matched characters.
func MatchPositions(query, candidate string) []int {
	if query == "" {
		return nil
	}

	q := []rune(strings.ToLower(query))
	c := []rune(strings.ToLower(candidate))

	if idx := runeIndex(c, q); idx >= 0 {
		positions := make([]int, len(q))
		for i := range q {
			positions[i] = idx + i
		}
		return positions
	}

	positions := make([]int, 0, len(q))
	for i, r := range c {
		if len(positions) == len(q) {
			break
		}
		if r == q[len(positions)] {
			positions = append(positions, i)
		}
	}
	return positions
}

// runeIndex returns the index of the first occurrence of needle in haystack, or -1.
func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
