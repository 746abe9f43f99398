package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFold strips combining marks so that diacritic and plain
// spellings of the same word compare equal ("Telyčia" vs "Telycia").
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldKey lowercases a value and strips diacritics, producing the key
// used for category, boolean and field-name comparisons.
func FoldKey(s string) string {
	folded, _, err := transform.String(diacriticFold, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

var (
	datePattern         = regexp.MustCompile(`^([0-9]{1,4})[-./]([0-9]{1,2})[-./]([0-9]{1,4})$`)
	timePattern         = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)
	spaceDecimalPattern = regexp.MustCompile(`^([0-9]+(?:[ ][0-9]{3})*)[ ]([0-9]{1,2})$`)
)

// NormalizeDate canonicalizes a date literal to ISO YYYY-MM-DD. Both
// year-first and day-first orderings are accepted, disambiguated purely
// by which end group has four digits. The second return is false when
// the value does not parse as a real calendar date.
func NormalizeDate(s string) (string, bool) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	var year, month, day int
	switch {
	case len(m[1]) == 4:
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
	case len(m[3]) == 4:
		year, _ = strconv.Atoi(m[3])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[1])
	default:
		return "", false
	}
	iso := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, err := time.Parse("2006-01-02", iso); err != nil {
		return "", false
	}
	return iso, true
}

// NormalizeTime zero-pads an H:MM literal to HH:MM. Anything that is not
// an hour/minute pair passes through unchanged.
func NormalizeTime(s string) string {
	s = strings.TrimSpace(s)
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	hour, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s", hour, m[2])
}

// NormalizeNumber parses a numeric literal that may carry European
// separators. When both '.' and ',' appear, the rightmost one is the
// decimal point and the other is a thousands separator; a lone ',' is a
// decimal point. A single space before a one- or two-digit tail acts as
// the decimal break ("610 00" means 610.00); other spaces are thousands
// grouping.
func NormalizeNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if m := spaceDecimalPattern.FindStringSubmatch(s); m != nil {
		s = strings.ReplaceAll(m[1], " ", "") + "." + m[2]
	}
	s = strings.ReplaceAll(s, " ", "")

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			return 0, false
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Normalizer converts raw field values into canonical typed values for
// one document family. Normalization is idempotent: feeding a canonical
// value back in returns it unchanged.
type Normalizer struct {
	family FamilyConfig
}

// NewNormalizer builds a normalizer bound to a family's category table
// and boolean literals.
func NewNormalizer(family FamilyConfig) *Normalizer {
	return &Normalizer{family: family}
}

// Normalize converts one raw value according to the field's semantic
// type. Absent or unparseable input yields nil; the caller still emits
// the record.
func (n *Normalizer) Normalize(spec FieldSpec, raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	switch spec.Type {
	case FieldDate:
		if iso, ok := NormalizeDate(raw); ok {
			return iso
		}
		return nil
	case FieldTime:
		return NormalizeTime(raw)
	case FieldNumber:
		if v, ok := NormalizeNumber(raw); ok {
			return v
		}
		return nil
	case FieldBool:
		return n.normalizeBool(raw)
	case FieldCategory:
		return n.normalizeCategory(raw)
	default:
		// tag, text and free_text pass through trimmed
		return raw
	}
}

// normalizeBool maps the family's yes literal to true and its no literal
// to false; anything else is nil.
func (n *Normalizer) normalizeBool(raw string) any {
	switch FoldKey(raw) {
	case FoldKey(n.family.YesLiteral):
		return true
	case FoldKey(n.family.NoLiteral):
		return false
	default:
		return nil
	}
}

// normalizeCategory canonicalizes a free label by diacritic-insensitive
// prefix match against the family's known variant groups. Unknown labels
// fall back to capitalized-first-letter form; the fixed prefix list is
// deliberately non-exhaustive, so callers reviewing output should watch
// for fallback spellings.
func (n *Normalizer) normalizeCategory(raw string) any {
	key := FoldKey(raw)
	for _, g := range n.family.Categories {
		for _, p := range g.Prefixes {
			if strings.HasPrefix(key, FoldKey(p)) {
				return g.Canonical
			}
		}
	}
	return capitalize(raw)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
