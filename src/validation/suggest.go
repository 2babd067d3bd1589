package validation

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/unicode/norm"
)

// DefaultSuggestionCutoff is the minimum similarity ratio for a suggestion.
const DefaultSuggestionCutoff = 0.6

// nameSet is the read-only set of declared identifiers of one kind, kept in
// declaration order so suggestions are deterministic.
type nameSet struct {
	order   []string
	members map[string]bool
}

func newNameSet() *nameSet {
	return &nameSet{members: make(map[string]bool)}
}

func (s *nameSet) add(name string) {
	if s.members[name] {
		return
	}
	s.members[name] = true
	s.order = append(s.order, name)
}

func (s *nameSet) has(name string) bool {
	return s.members[name]
}

// Suggest returns the candidate most similar to value, if any reaches cutoff.
// Comparison is case-sensitive and ignores whitespace. Ties go to the
// earliest candidate.
func Suggest(value string, candidates []string, cutoff float64) (string, bool) {
	target := similarityTokens(value)
	matcher := difflib.NewMatcher(nil, target)

	best, bestRatio := "", 0.0
	for _, candidate := range candidates {
		matcher.SetSeq1(similarityTokens(candidate))
		ratio := matcher.Ratio()
		if ratio >= cutoff && ratio > bestRatio {
			best, bestRatio = candidate, ratio
		}
	}
	return best, best != ""
}

// similarityTokens splits a string into NFC-normalised runes, dropping whitespace.
func similarityTokens(s string) []string {
	s = norm.NFC.String(s)
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		tokens = append(tokens, string(r))
	}
	return tokens
}

// resolve checks a weak reference against a name set. When unresolved it
// returns a suggestion, or "" if nothing is similar enough.
func (s *nameSet) resolve(value string, cutoff float64) (bool, string) {
	if s.has(value) {
		return true, ""
	}
	suggestion, _ := Suggest(value, s.order, cutoff)
	return false, suggestion
}

// productKey returns the product name part of a deal skuName:
// "Margherita (Large)" -> "Margherita".
func productKey(skuName string) string {
	if i := strings.Index(skuName, " ("); i >= 0 {
		return skuName[:i]
	}
	return skuName
}
