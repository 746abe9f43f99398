package family

import (
	"sort"
	"strings"

	"github.com/Chatbots-automated/zub-berciunai/internal/report"
)

// DetectionResult is one family's score for a piece of document text.
type DetectionResult struct {
	Family     string   `json:"family"`
	Score      float64  `json:"score"`
	Keywords   []string `json:"keywords,omitempty"`
	MarkersHit int      `json:"markers_hit"`
}

// detectionRule pairs a family with the content keywords that signal it.
// Keyword matching is diacritic- and case-insensitive so scanned exports
// with lost accents still score.
type detectionRule struct {
	family   string
	keywords []string
	weight   float64
}

var detectionRules = []detectionRule{
	{
		family:   "herd-register",
		keywords: []string{"bandos registras", "galvij", "veislė", "gimimo data", "lytis"},
		weight:   1.0,
	},
	{
		family:   "milk-production",
		keywords: []string{"pieno", "riebalai", "baltymai", "primilžis"},
		weight:   1.0,
	},
	{
		family:   "deliveries",
		keywords: []string{"dalis", "priimta", "kiekis", "pristatym"},
		weight:   0.8,
	},
}

// Classifier guesses which document family a raw text most likely
// belongs to, scoring keyword and marker hits per family. The guess is
// advisory; callers pass the family explicitly when they know it.
type Classifier struct {
	families map[string]report.FamilyConfig
}

// NewClassifier builds a classifier over the built-in families.
func NewClassifier() *Classifier {
	return &Classifier{families: Builtin()}
}

// Detect scores every family against the text and returns the results in
// descending score order. An empty result means no rule matched at all.
func (c *Classifier) Detect(text string) []DetectionResult {
	folded := report.FoldKey(text)

	var results []DetectionResult
	for _, rule := range detectionRules {
		res := DetectionResult{Family: rule.family}
		for _, kw := range rule.keywords {
			if strings.Contains(folded, report.FoldKey(kw)) {
				res.Keywords = append(res.Keywords, kw)
			}
		}
		if fam, ok := c.families[rule.family]; ok {
			for _, m := range fam.Markers {
				if strings.Contains(folded, report.FoldKey(m)) {
					res.MarkersHit++
				}
			}
		}
		if len(res.Keywords) == 0 && res.MarkersHit == 0 {
			continue
		}
		res.Score = rule.weight * (float64(len(res.Keywords)) + 2*float64(res.MarkersHit)) /
			(float64(len(rule.keywords)) + 2)
		results = append(results, res)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// Best returns the top-scoring family for the text, or false when
// nothing matched.
func (c *Classifier) Best(text string) (DetectionResult, bool) {
	results := c.Detect(text)
	if len(results) == 0 {
		return DetectionResult{}, false
	}
	return results[0], true
}
