package report

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Ear-tag style identities: two letters followed by at least six
	// digits, or an upper-case country prefix followed by any digits
	// (LT1234, DE0012345).
	longTagPattern    = regexp.MustCompile(`^[A-Za-z]{2}[0-9]{6,}$`)
	countryTagPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]+$`)
)

// IsIdentityTag reports whether the value has the shape of an identity
// tag code.
func IsIdentityTag(s string) bool {
	s = strings.TrimSpace(s)
	return longTagPattern.MatchString(s) || countryTagPattern.MatchString(s)
}

// DetectHeader decides whether the given first row of a section is a
// header row or already data. The rule is a heuristic, not a guarantee:
//
//  1. A cell shaped like an identity tag means the row is data; header
//     rows name columns, they never carry a tag code. The check covers
//     every cell, not only the first: that is stricter than the base
//     first-cell rule, but it can only veto a header candidate, never
//     invent one.
//  2. Otherwise the row is a header when at least half of its non-empty
//     cells contain a non-digit character.
func DetectHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}

	nonEmpty, textual := 0, 0
	for _, c := range row {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if IsIdentityTag(c) {
			return false
		}
		nonEmpty++
		if strings.ContainsFunc(c, func(r rune) bool { return r < '0' || r > '9' }) {
			textual++
		}
	}
	if nonEmpty == 0 {
		return false
	}
	return float64(textual)/float64(nonEmpty) >= 0.5
}

// HeaderNames turns a detected header row into usable field names. Empty
// cells get a positional placeholder; a name repeated within the row
// keeps its bare form on the first occurrence and gets an occurrence
// suffix on every repeat. Suffixed names are checked against everything
// already emitted, so a suffix can never collide with a literal cell and
// the result is always unique.
func HeaderNames(row []string) []string {
	names := make([]string, len(row))
	occurrences := make(map[string]int, len(row))
	taken := make(map[string]bool, len(row))
	for i, c := range row {
		base := strings.TrimSpace(c)
		if base == "" {
			base = fmt.Sprintf("Col_%d", i+1)
		}
		occurrences[base]++

		name := base
		for n := occurrences[base]; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}
