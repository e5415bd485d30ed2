// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordbank assembles complete wordbank entries from the lexicon
// sources, the relations builder and the distractor generator, runs
// generation over a word list, and reads and writes wordbank documents.
package wordbank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pdiddy/wordbank/internal/distractor"
	"github.com/pdiddy/wordbank/internal/lexicon"
	"github.com/pdiddy/wordbank/internal/relations"
	"github.com/pdiddy/wordbank/pkg/types"
)

// Review reasons recorded for entries that need manual attention.
const (
	ReasonNoImage    = "no_image"
	ReasonIncomplete = "incomplete"
)

const (
	sourceTatoeba = "tatoeba"
	sourceIdioms  = "idioms"
)

// MaxPhrases caps the idioms kept per entry.
const MaxPhrases = 5

// ErrPOSMismatch means the requested part of speech is not one the
// dictionary lists for the word.
var ErrPOSMismatch = errors.New("part of speech not listed for word")

// Dictionary supplies the definition, part of speech and examples of a
// word. *lexicon.FreeDictionary satisfies it.
type Dictionary interface {
	Lookup(ctx context.Context, word string) (lexicon.Definition, error)
}

// RelationSource gathers relationship words. *relations.Builder satisfies it.
type RelationSource interface {
	Build(ctx context.Context, word string) (relations.Relations, error)
}

// CategorySource returns a category for nouns. *lexicon.Datamuse satisfies it.
type CategorySource interface {
	FetchCategory(ctx context.Context, word, pos string) (string, error)
}

// SentenceSource returns raw example sentences. *lexicon.Tatoeba satisfies it.
type SentenceSource interface {
	Sentences(ctx context.Context, word string) ([]string, error)
}

// PhraseSource returns idioms containing a word. *lexicon.Idioms satisfies it.
type PhraseSource interface {
	Phrases(ctx context.Context, word string, limit int) ([]string, error)
}

// Ranker returns a word's frequency rank. *lexicon.FrequencyList satisfies it.
type Ranker interface {
	Rank(ctx context.Context, word string) int
}

// Master is the approved-entry and progress store. *store.Store satisfies it.
type Master interface {
	ApprovedEntry(ctx context.Context, word string) (types.WordEntry, bool, error)
	SaveEntry(ctx context.Context, e types.WordEntry) error
	SaveProgress(ctx context.Context, name string, remaining []string) error
	ClearProgress(ctx context.Context, name string) error
}

// Option configures a Builder.
type Option func(*Builder)

// WithRelations sets the relationship source.
func WithRelations(r RelationSource) Option { return func(b *Builder) { b.relations = r } }

// WithCategories sets the category source.
func WithCategories(c CategorySource) Option { return func(b *Builder) { b.categories = c } }

// WithSentences sets the example sentence source.
func WithSentences(s SentenceSource) Option { return func(b *Builder) { b.sentences = s } }

// WithPhrases sets the idiom source.
func WithPhrases(p PhraseSource) Option { return func(b *Builder) { b.phrases = p } }

// WithRanker sets the frequency ranker.
func WithRanker(r Ranker) Option { return func(b *Builder) { b.ranker = r } }

// WithMaster sets the master store used for reuse, review and progress.
func WithMaster(m Master) Option { return func(b *Builder) { b.master = m } }

// WithGeneration sets run options.
func WithGeneration(cfg types.GenerationConfig) Option {
	return func(b *Builder) { b.cfg = cfg }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option { return func(b *Builder) { b.log = l } }

// Builder assembles wordbank entries. Like the distractor generator it
// wraps, it is not safe for concurrent use.
type Builder struct {
	dict       Dictionary
	gen        *distractor.Generator
	relations  RelationSource
	categories CategorySource
	sentences  SentenceSource
	phrases    PhraseSource
	ranker     Ranker
	master     Master
	cfg        types.GenerationConfig
	log        *slog.Logger
}

// NewBuilder returns a Builder. dict and gen are required; every other
// source is optional and its fields stay empty when absent.
func NewBuilder(dict Dictionary, gen *distractor.Generator, opts ...Option) *Builder {
	b := &Builder{
		dict: dict,
		gen:  gen,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Built is the outcome of BuildEntry.
type Built struct {
	Entry  types.WordEntry
	Reused bool
	Review []types.ReviewItem
}

// BuildEntry assembles the entry for req. Approved master entries are
// reused when the generation config asks for it. Stopwords and
// function-only words return lexicon.ErrExcluded, words without a usable
// definition lexicon.ErrNotFound, a requested part of speech the word does
// not have ErrPOSMismatch, and spent API budgets lexicon.ErrRateLimited.
func (b *Builder) BuildEntry(ctx context.Context, req Request) (Built, error) {
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		return Built{}, errors.New("empty word")
	}
	if lexicon.IsStopword(word) {
		return Built{}, lexicon.ErrExcluded
	}

	if b.master != nil && b.cfg.UseMaster && !b.cfg.Force {
		e, ok, err := b.master.ApprovedEntry(ctx, word)
		if err != nil {
			b.log.WarnContext(ctx, "master lookup failed", "word", word, "error", err)
		}
		if ok {
			return Built{Entry: e, Reused: true}, nil
		}
	}

	def, err := b.dict.Lookup(ctx, word)
	if err != nil {
		return Built{}, fmt.Errorf("definition %s: %w", word, err)
	}
	pos := def.POS
	if req.POS != "" && req.POS != def.POS {
		if !slices.Contains(def.AllPOS, req.POS) {
			return Built{}, fmt.Errorf("%s as %s: %w", word, req.POS, ErrPOSMismatch)
		}
		pos = req.POS
	}

	entry := types.WordEntry{
		ID:            EntryID(word),
		Word:          word,
		PartOfSpeech:  pos,
		Definition:    def.Definition,
		SoundGroup:    b.gen.Detector().Group(word),
		Distractors:   []string{},
		Sentences:     []string{},
		Phrases:       []string{},
		FrequencyRank: types.UnrankedFrequency,
		Sources:       map[string]string{"definition": relations.SourceFreeDictionary},
	}

	rel, err := b.relationsFor(ctx, word, def)
	if err != nil {
		return Built{}, err
	}
	entry.Relationships = rel.Types()
	for k, v := range rel.Sources {
		entry.Sources[k] = v
	}

	if b.categories != nil {
		cat, err := b.categories.FetchCategory(ctx, word, pos)
		if err != nil {
			if errors.Is(err, lexicon.ErrRateLimited) {
				return Built{}, fmt.Errorf("category %s: %w", word, err)
			}
			b.log.WarnContext(ctx, "category lookup failed", "word", word, "error", err)
		}
		entry.Category = cat
	}

	entry.Distractors = b.gen.Generate(ctx, distractor.Target{
		Word:     word,
		POS:      pos,
		Avoid:    rel.Avoid(),
		Rhymes:   rel.Rhymes,
		Category: entry.Category,
	})
	if err := ctx.Err(); err != nil {
		return Built{}, err
	}

	if b.ranker != nil {
		entry.FrequencyRank = b.ranker.Rank(ctx, word)
	}

	sentences, source, err := b.exampleSentences(ctx, word, def)
	if err != nil {
		return Built{}, err
	}
	entry.Sentences = sentences
	if source != "" {
		entry.Sources["sentences"] = source
	}

	if b.phrases != nil {
		phrases, err := b.phrases.Phrases(ctx, word, MaxPhrases)
		if err != nil {
			b.log.WarnContext(ctx, "idiom lookup failed", "word", word, "error", err)
		}
		if len(phrases) > 0 {
			entry.Phrases = phrases
			entry.Sources["phrases"] = sourceIdioms
		}
	}

	built := Built{Entry: entry}
	built.Entry.NeedsReview = !built.Entry.IsComplete()
	built.Review = reviewItems(built.Entry)

	if b.master != nil {
		if err := b.master.SaveEntry(ctx, built.Entry); err != nil {
			b.log.WarnContext(ctx, "saving entry failed", "word", word, "error", err)
		}
	}
	return built, nil
}

// relationsFor builds relations, topping up synonyms and antonyms from the
// dictionary sense when the sources found none.
func (b *Builder) relationsFor(ctx context.Context, word string, def lexicon.Definition) (relations.Relations, error) {
	var rel relations.Relations
	if b.relations != nil {
		var err error
		rel, err = b.relations.Build(ctx, word)
		if err != nil {
			return relations.Relations{}, fmt.Errorf("relations %s: %w", word, err)
		}
		if err := rel.Err(); errors.Is(err, lexicon.ErrRateLimited) {
			return relations.Relations{}, fmt.Errorf("relations %s: %w", word, err)
		}
	}
	if len(rel.Synonyms) == 0 {
		rel.Synonyms = relations.Clean(word, 5, def.Synonyms)
	}
	if len(rel.Antonyms) == 0 {
		rel.Antonyms = relations.Clean(word, 5, def.Antonyms)
	}
	return rel, nil
}

// exampleSentences prefers corpus sentences and tops them up with the
// dictionary's examples.
func (b *Builder) exampleSentences(ctx context.Context, word string, def lexicon.Definition) ([]string, string, error) {
	var corpus []string
	if b.sentences != nil {
		raw, err := b.sentences.Sentences(ctx, word)
		switch {
		case errors.Is(err, lexicon.ErrRateLimited):
			return nil, "", fmt.Errorf("sentences %s: %w", word, err)
		case err != nil:
			b.log.WarnContext(ctx, "sentence lookup failed", "word", word, "error", err)
		}
		corpus = lexicon.FilterSentences(raw, word, types.MinSentences)
	}

	all := lexicon.FilterSentences(slices.Concat(corpus, def.Examples), word, types.MinSentences)
	switch {
	case len(all) == 0:
		return []string{}, "", nil
	case len(corpus) == 0:
		return all, relations.SourceFreeDictionary, nil
	case len(all) > len(corpus):
		return all, sourceTatoeba + "+" + relations.SourceFreeDictionary, nil
	}
	return all, sourceTatoeba, nil
}

// EntryID derives the stable entry identifier of word.
func EntryID(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), "_")
}

// Missing lists what keeps e from being complete.
func Missing(e types.WordEntry) []string {
	var out []string
	if e.Definition == "" {
		out = append(out, "definition")
	}
	if e.Visual.Emoji == "" && e.Visual.ImageURL == "" {
		out = append(out, "visual")
	}
	if n := len(e.Sentences); n < types.MinSentences {
		out = append(out, fmt.Sprintf("sentences (%d/%d)", n, types.MinSentences))
	}
	if n := len(e.Distractors); n < types.MinDistractors {
		out = append(out, fmt.Sprintf("distractors (%d/%d)", n, types.MinDistractors))
	}
	if e.PartOfSpeech == types.POSNoun && e.Category == "" {
		out = append(out, "category")
	}
	return out
}

func reviewItems(e types.WordEntry) []types.ReviewItem {
	var items []types.ReviewItem
	if e.Visual.Emoji == "" && e.Visual.ImageURL == "" {
		items = append(items, types.ReviewItem{Word: e.Word, Reason: ReasonNoImage})
	}
	if e.NeedsReview {
		items = append(items, types.ReviewItem{
			Word:    e.Word,
			Reason:  ReasonIncomplete,
			Details: "missing " + strings.Join(Missing(e), ", "),
		})
	}
	return items
}
