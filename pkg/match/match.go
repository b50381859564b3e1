// Package match provides the text comparison primitives shared by the
// linker, the price resolver and search: case-folded equality and
// containment, and approximate substring similarity with top-K retrieval.
//
// Similarity is expressed on a single scale everywhere: a float in [0, 1]
// where higher is closer and 1 is an exact match.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/servicemap/pkg/constants"
)

// DefaultMinSimilarity is the minimum similarity a fuzzy candidate needs.
const DefaultMinSimilarity = constants.DefaultMinSimilarity

// Normalize folds case, strips combining marks and collapses whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// Casers and transformer chains hold state, so they are built per call.
	folded := cases.Fold().String(s)
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		folded,
	)
	if err != nil {
		stripped = folded
	}
	return strings.Join(strings.Fields(stripped), " ")
}

// Fold folds case and trims surrounding whitespace. Inner whitespace and
// diacritics are kept.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Equal reports whether a and b are equal ignoring case and surrounding
// whitespace. Empty strings never match anything.
func Equal(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	return fa != "" && fa == fb
}

// Contains reports whether the normalized haystack contains the normalized
// needle. An empty needle or haystack never matches.
func Contains(haystack, needle string) bool {
	nn := Normalize(needle)
	if nn == "" {
		return false
	}
	nh := Normalize(haystack)
	return nh != "" && strings.Contains(nh, nn)
}
