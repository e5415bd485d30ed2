// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package distractor picks wrong-answer words for multiple-choice word
// recognition exercises.
//
// A distractor must not be a synonym, antonym or associate of the target
// (rules 1 and 5), must not share its starting sound (rule 2), must not
// rhyme with it (rule 3), must not share its category (rule 4), must be close
// in length (rule 6), must share its part of speech (rule 7), and must not be
// overused across the wordbank (rule 8).
//
// Candidates come from a frequency-ranked WordPool, tried at exact length
// first and then at widening tolerances. Category and part-of-speech checks
// fail open: a candidate whose category or part of speech cannot be resolved
// is not rejected by that rule.
package distractor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pdiddy/wordbank/internal/sound"
	"github.com/pdiddy/wordbank/pkg/types"
)

// WordPool supplies frequency-ranked candidates whose rune length lies in
// [length-tolerance, length+tolerance], skipping any word in exclude
// (lowercase). Results are ordered most frequent first.
type WordPool interface {
	WordsByLength(ctx context.Context, length, tolerance int, exclude map[string]struct{}, limit int) ([]string, error)
}

// POSResolver returns every part of speech known for word. An empty result
// means unknown.
type POSResolver interface {
	PartsOfSpeech(ctx context.Context, word string) ([]string, error)
}

// CategoryResolver returns the coarse semantic categories of word, best
// first. An empty result means there is no signal.
type CategoryResolver interface {
	Categories(ctx context.Context, word string) ([]string, error)
}

// Target describes the word under exercise and what to keep away from it.
type Target struct {
	// Word is the exercise word. An empty word yields no distractors.
	Word string

	// POS is noun, verb, adjective or adverb. Empty accepts any part of speech.
	POS string

	// Avoid holds synonyms, antonyms and associated words.
	Avoid []string

	// Rhymes holds known rhymes of Word.
	Rhymes []string

	// Category is the target's semantic category. Empty skips rule 4.
	Category string
}

// Option configures a Generator.
type Option func(*Generator)

// WithDetector sets the sound detector used for rule 2 (default English).
func WithDetector(d *sound.Detector) Option {
	return func(g *Generator) { g.detector = d }
}

// WithConfig overrides the generation policy. Zero fields keep defaults.
func WithConfig(cfg types.DistractorConfig) Option {
	return func(g *Generator) { g.cfg = cfg.WithDefaults() }
}

// WithLogger sets the logger for rejection and lookup diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// Generator produces and audits distractor lists. It owns a usage ledger and
// per-word lookup caches for its lifetime. It is not safe for concurrent use;
// one Generator serves one wordbank run at a time.
type Generator struct {
	pool     WordPool
	pos      POSResolver
	category CategoryResolver
	detector *sound.Detector
	cfg      types.DistractorConfig
	log      *slog.Logger

	ledger        *UsageLedger
	posCache      map[string][]string
	categoryCache map[string][]string
}

// New returns a Generator drawing candidates from pool. pos and category may
// be nil, in which case rules 7 and 4 never reject.
func New(pool WordPool, pos POSResolver, category CategoryResolver, opts ...Option) *Generator {
	g := &Generator{
		pool:          pool,
		pos:           pos,
		category:      category,
		cfg:           types.DefaultDistractorConfig(),
		log:           slog.New(slog.DiscardHandler),
		posCache:      make(map[string][]string),
		categoryCache: make(map[string][]string),
	}
	for _, o := range opts {
		o(g)
	}
	if g.detector == nil {
		g.detector = sound.New(sound.DefaultLanguage)
	}
	g.ledger = NewUsageLedger(g.cfg.MaxReuse)
	return g
}

// Config returns the active policy.
func (g *Generator) Config() types.DistractorConfig { return g.cfg }

// Detector returns the sound detector used for rule 2.
func (g *Generator) Detector() *sound.Detector { return g.detector }

// Ledger exposes the usage ledger for reporting.
func (g *Generator) Ledger() *UsageLedger { return g.ledger }

// Usage returns how many times word has been emitted since the last reset.
func (g *Generator) Usage(word string) int { return g.ledger.Count(word) }

// ResetUsage clears the usage ledger. Call it between independent wordbank
// runs.
func (g *Generator) ResetUsage() { g.ledger.Reset() }

// Generate returns up to Max distractors for t. Exact-length candidates are
// tried before wider tolerances, each batch in frequency order. A shorter
// list means the pool ran dry; it is not an error. Accepted words are
// recorded in the usage ledger.
func (g *Generator) Generate(ctx context.Context, t Target) []string {
	word := strings.TrimSpace(t.Word)
	if word == "" || g.pool == nil {
		return nil
	}

	targetLen := runeLen(word)
	targetSound := g.detector.Group(word)
	avoid, endings := buildAvoid(word, t.Avoid, t.Rhymes)

	accepted := make([]string, 0, g.cfg.Max)
	seen := make(wordSet, g.cfg.Max)

	for _, tolerance := range g.cfg.Tolerances {
		if len(accepted) >= g.cfg.Max {
			break
		}
		if ctx.Err() != nil {
			g.log.Debug("generation cancelled", "target", word, "accepted", len(accepted))
			break
		}

		exclude := make(map[string]struct{}, len(avoid)+len(seen))
		for w := range avoid {
			exclude[w] = struct{}{}
		}
		for w := range seen {
			exclude[w] = struct{}{}
		}

		candidates, err := g.pool.WordsByLength(ctx, targetLen, tolerance, exclude, g.cfg.PoolLimit)
		if err != nil {
			g.log.Warn("word pool lookup failed", "target", word, "tolerance", tolerance, "error", err)
			continue
		}

		for _, c := range candidates {
			if len(accepted) >= g.cfg.Max || ctx.Err() != nil {
				break
			}
			lower := strings.ToLower(strings.TrimSpace(c))
			if lower == "" || seen.has(lower) || avoid.has(lower) {
				continue
			}
			if rule := g.reject(ctx, lower, word, t, targetSound, endings); rule != 0 {
				g.log.Debug("candidate rejected", "target", word, "candidate", lower, "rule", rule)
				continue
			}
			// A lookup cut short by cancellation reads as unknown; don't accept on it.
			if ctx.Err() != nil {
				break
			}
			accepted = append(accepted, strings.TrimSpace(c))
			seen.add(lower)
			g.ledger.Record(lower)
		}
	}

	return accepted
}

// reject returns the number of the first rule cand breaks, or 0. Checks run
// cheapest first so that lookups happen only for candidates that survive the
// string comparisons.
func (g *Generator) reject(ctx context.Context, cand, target string, t Target, targetSound string, endings wordSet) int {
	if g.ledger.Exhausted(cand) {
		return 8
	}
	if g.detector.Group(cand) == targetSound {
		return 2
	}
	if endsAlike(cand, target, endings) {
		return 3
	}
	if t.Category != "" && categoryMatches(g.lookupCategories(ctx, cand), t.Category) {
		return 4
	}
	if !g.posAllowed(ctx, cand, t.POS) {
		return 7
	}
	return 0
}

// posAllowed reports whether cand can serve as pos. Unknown parts of speech
// and an empty pos are allowed.
func (g *Generator) posAllowed(ctx context.Context, cand, pos string) bool {
	if pos == "" {
		return true
	}
	known := g.lookupPOS(ctx, cand)
	if len(known) == 0 {
		return true
	}
	for _, p := range known {
		if strings.EqualFold(p, pos) {
			return true
		}
	}
	return false
}

func (g *Generator) lookupPOS(ctx context.Context, word string) []string {
	if cached, ok := g.posCache[word]; ok {
		return cached
	}
	if g.pos == nil {
		return nil
	}
	parts, err := g.pos.PartsOfSpeech(ctx, word)
	if err != nil {
		g.log.Debug("part of speech unknown", "word", word, "error", err)
		parts = nil
	}
	g.posCache[word] = parts
	return parts
}

func (g *Generator) lookupCategories(ctx context.Context, word string) []string {
	if cached, ok := g.categoryCache[word]; ok {
		return cached
	}
	if g.category == nil {
		return nil
	}
	cats, err := g.category.Categories(ctx, word)
	if err != nil {
		g.log.Debug("category unknown", "word", word, "error", err)
		cats = nil
	}
	g.categoryCache[word] = cats
	return cats
}
