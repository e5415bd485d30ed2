// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package distractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// Issue is one rule violation found by ValidateDistractors.
type Issue struct {
	Rule    int    `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string { return fmt.Sprintf("Rule %d: %s", i.Rule, i.Message) }

// Validation is the audit result for one supplied distractor.
type Validation struct {
	Word   string  `json:"word" yaml:"word"`
	Valid  bool    `json:"valid" yaml:"valid"`
	Issues []Issue `json:"issues" yaml:"issues"`

	// Similarity is the Jaro-Winkler score between the target and Word. It is
	// informational and never affects Valid.
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// ValidateDistractors audits an existing distractor list against rules 1-6
// and 8 and reports, per word, which rules it breaks. Part of speech is not
// checked. The usage ledger is read but never modified. One Validation is
// returned per input word, in input order.
func (g *Generator) ValidateDistractors(ctx context.Context, t Target, distractors []string) []Validation {
	target := strings.TrimSpace(t.Word)
	targetLower := strings.ToLower(target)
	targetLen := runeLen(target)
	targetSound := g.detector.Group(target)

	avoid := make(wordSet, len(t.Avoid))
	for _, w := range t.Avoid {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			avoid.add(w)
		}
	}
	rhymes := make(wordSet, len(t.Rhymes))
	for _, r := range t.Rhymes {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			rhymes.add(r)
		}
	}

	results := make([]Validation, 0, len(distractors))
	for _, d := range distractors {
		lower := strings.ToLower(strings.TrimSpace(d))
		var issues []Issue

		if avoid.has(lower) || (lower != "" && lower == targetLower) {
			issues = append(issues, Issue{1, "in avoid list (synonym/antonym/associated)"})
		}
		if target != "" && g.detector.Group(lower) == targetSound {
			issues = append(issues, Issue{2, fmt.Sprintf("same starting sound (%s)", targetSound)})
		}
		if rhymes.has(lower) {
			issues = append(issues, Issue{3, "rhymes with target"})
		} else if target != "" && endsAlike(lower, target, nil) {
			issues = append(issues, Issue{3, "ending suggests rhyme"})
		}
		if t.Category != "" && categoryMatches(g.lookupCategories(ctx, lower), t.Category) {
			issues = append(issues, Issue{4, fmt.Sprintf("same category (%s)", t.Category)})
		}
		if diff := abs(runeLen(lower) - targetLen); diff > g.cfg.MaxLengthDiff {
			issues = append(issues, Issue{6, fmt.Sprintf("length difference too large (%d)", diff)})
		}
		if n := g.ledger.Count(lower); n >= g.cfg.MaxReuse {
			issues = append(issues, Issue{8, fmt.Sprintf("overused (%d times)", n)})
		}

		v := Validation{Word: d, Valid: len(issues) == 0, Issues: issues}
		if target != "" && lower != "" {
			v.Similarity = matchr.JaroWinkler(targetLower, lower, false)
		}
		results = append(results, v)
	}
	return results
}
