// Package verify decides whether a typed translation is close enough to one
// of the accepted answers.
package verify

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the minimum token-sort ratio, on a 0-100 scale, for an
// attempt to count as correct.
const DefaultThreshold = 90

// Verifier checks attempts against a fixed similarity threshold.
type Verifier struct {
	threshold int
}

// New returns a Verifier accepting scores >= threshold.
func New(threshold int) (*Verifier, error) {
	if threshold < 1 || threshold > 100 {
		return nil, fmt.Errorf("match threshold must be within 1..100 (got %d)", threshold)
	}
	return &Verifier{threshold: threshold}, nil
}

// Threshold returns the configured minimum score.
func (v *Verifier) Threshold() int { return v.threshold }

// Check reports whether attempt matches any accepted translation.
func (v *Verifier) Check(attempt string, accepted []string) bool {
	for _, t := range accepted {
		if TokenSortRatio(attempt, t) >= v.threshold {
			return true
		}
	}
	return false
}

// TokenSortRatio scores the similarity of a and b from 0 to 100, ignoring
// case, punctuation and word order.
func TokenSortRatio(a, b string) int {
	sa, sb := sortedTokens(a), sortedTokens(b)
	if sa == "" || sb == "" {
		return 0
	}
	return Ratio(sa, sb)
}

// Ratio is the difflib sequence-matcher similarity of a and b, scaled to 0-100.
func Ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	m := difflib.NewMatcher(runes(a), runes(b))
	return int(math.RoundToEven(100 * m.Ratio()))
}

// process lowercases s, turns every rune that is not a letter, digit or
// underscore into a space and trims the result.
func process(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(s)
}

func sortedTokens(s string) string {
	tokens := strings.Fields(process(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
