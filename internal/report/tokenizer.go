package report

import "regexp"

// RowPattern is one row-shape matcher in a variant's cascade. The
// expression must be anchored and cover the entire line; its capture
// groups correspond one-to-one, in order, to Fields, which name variant
// fields the groups populate. Groups left empty by optional tails stay
// absent.
//
// RE2 has no lookahead, so variable-length free-text spans are expressed
// as non-greedy captures immediately followed by the literal shape of the
// next fixed token (a date, in this domain). A date glued to a trailing
// number with no separating space still splits, because the date shape
// consumes a fixed width and the remainder of the digit run falls to the
// next group.
type RowPattern struct {
	Name   string
	Regexp *regexp.Regexp
	Fields []string
}

// MustRowPattern compiles a row pattern, panicking on a bad expression.
// Intended for the static variant tables.
func MustRowPattern(name, expr string, fields ...string) RowPattern {
	return RowPattern{Name: name, Regexp: regexp.MustCompile(expr), Fields: fields}
}

// Tokenizer matches free-text lines against an ordered cascade of row
// patterns, most specific first. The first pattern consuming the whole
// line wins; that ordering is the tie-break rule.
type Tokenizer struct {
	patterns []RowPattern
}

// NewTokenizer builds a tokenizer over a variant's pattern cascade.
func NewTokenizer(v Variant) *Tokenizer {
	return &Tokenizer{patterns: v.Patterns}
}

// Match extracts raw field substrings from one line. It returns the
// field-name→substring map, the winning pattern's name and true; or
// false when no pattern matches, in which case the caller counts the row
// as skipped and moves on.
func (t *Tokenizer) Match(line string) (map[string]string, string, bool) {
	for _, p := range t.patterns {
		m := p.Regexp.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		raw := make(map[string]string, len(p.Fields))
		for i, name := range p.Fields {
			if i+1 < len(m) && m[i+1] != "" {
				raw[name] = m[i+1]
			}
		}
		return raw, p.Name, true
	}
	return nil, "", false
}
