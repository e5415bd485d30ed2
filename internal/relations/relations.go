// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relations gathers synonyms, antonyms, associated words and rhymes
// for a target word from several sources and cleans them into lists fit for
// a child's vocabulary exercise. The same lists feed the distractor
// generator's avoid set.
package relations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/wordbank/internal/lexicon"
	"github.com/pdiddy/wordbank/pkg/types"
)

// Source names recorded in Relations.Sources.
const (
	SourceCurated        = "curated"
	SourceMerriamWebster = "merriam-webster"
	SourceFreeDictionary = "free-dictionary"
	SourceUSF            = "usf"
	SourceDatamuse       = "datamuse"
)

const cachePrefix = "relationships_v5_"

// SynonymSource returns synonyms and antonyms of word.
type SynonymSource interface {
	Relations(ctx context.Context, word string) (synonyms, antonyms []string, err error)
}

// Thesaurus is a SynonymSource with a request budget.
type Thesaurus interface {
	SynonymSource
	Available() bool
}

// AssociationSource returns words associated with word, strongest first.
type AssociationSource interface {
	Associations(ctx context.Context, word string, limit int) ([]string, error)
}

// RhymeSource returns words that rhyme with word.
type RhymeSource interface {
	Rhymes(ctx context.Context, word string, limit int) ([]string, error)
}

// Relations is the cleaned relationship set of one word.
type Relations struct {
	Synonyms   []string          `json:"synonyms"`
	Antonyms   []string          `json:"antonyms"`
	Associated []string          `json:"associated"`
	Rhymes     []string          `json:"rhymes"`
	Sources    map[string]string `json:"sources,omitempty"`

	// Errors holds source failures. Relations built despite failures are
	// not cached.
	Errors []error `json:"-"`
}

// Err joins every source failure, or returns nil.
func (r Relations) Err() error { return errors.Join(r.Errors...) }

// Avoid returns synonyms, antonyms and associated words: the words a
// distractor must never be.
func (r Relations) Avoid() []string {
	out := make([]string, 0, len(r.Synonyms)+len(r.Antonyms)+len(r.Associated))
	out = append(out, r.Synonyms...)
	out = append(out, r.Antonyms...)
	return append(out, r.Associated...)
}

// Types converts r to the wordbank entry representation.
func (r Relations) Types() types.Relationships {
	return types.Relationships{
		Synonyms:   nonNil(r.Synonyms),
		Antonyms:   nonNil(r.Antonyms),
		Associated: nonNil(r.Associated),
		Rhymes:     nonNil(r.Rhymes),
	}
}

type namedAssociations struct {
	name string
	src  AssociationSource
}

// Option configures a Builder.
type Option func(*Builder)

// WithThesaurus sets the primary synonym source. It is skipped whenever
// Available reports false.
func WithThesaurus(t Thesaurus) Option {
	return func(b *Builder) { b.thesaurus = t }
}

// WithDictionary sets the fallback synonym source used when the thesaurus
// is unavailable or has nothing for a word.
func WithDictionary(s SynonymSource) Option {
	return func(b *Builder) { b.dictionary = s }
}

// WithAssociations appends an association source. Sources are tried in the
// order added; the first non-empty answer wins.
func WithAssociations(name string, s AssociationSource) Option {
	return func(b *Builder) {
		b.associations = append(b.associations, namedAssociations{name: name, src: s})
	}
}

// WithRhymes sets the rhyme source.
func WithRhymes(s RhymeSource) Option {
	return func(b *Builder) { b.rhymes = s }
}

// WithLimits caps each list. Zero fields keep the defaults 5, 5, 6 and 7.
func WithLimits(cfg types.RelationsConfig) Option {
	return func(b *Builder) {
		if cfg.MaxSynonyms > 0 {
			b.limits.MaxSynonyms = cfg.MaxSynonyms
		}
		if cfg.MaxAntonyms > 0 {
			b.limits.MaxAntonyms = cfg.MaxAntonyms
		}
		if cfg.MaxAssociated > 0 {
			b.limits.MaxAssociated = cfg.MaxAssociated
		}
		if cfg.MaxRhymes > 0 {
			b.limits.MaxRhymes = cfg.MaxRhymes
		}
	}
}

// WithCache stores finished relationship sets.
func WithCache(c lexicon.Cache) Option {
	return func(b *Builder) { b.cache = c }
}

// WithLogger sets the logger for source failures.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// Builder assembles Relations from its configured sources. It is safe for
// concurrent use if its sources are.
type Builder struct {
	thesaurus    Thesaurus
	dictionary   SynonymSource
	associations []namedAssociations
	rhymes       RhymeSource
	cache        lexicon.Cache
	limits       types.RelationsConfig
	log          *slog.Logger
}

// NewBuilder returns a Builder. With no sources it yields only the curated
// pairs.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		limits: types.RelationsConfig{
			MaxSynonyms:   5,
			MaxAntonyms:   5,
			MaxAssociated: 6,
			MaxRhymes:     7,
		},
		log: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build gathers relations for word. Sources are queried concurrently and a
// failing source leaves its lists empty and its error in Relations.Errors;
// Build itself fails only on an empty word or a cancelled context.
func (b *Builder) Build(ctx context.Context, word string) (Relations, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return Relations{}, errors.New("empty word")
	}

	var rel Relations
	if b.cache != nil {
		ok, err := b.cache.GetJSON(ctx, cachePrefix+word, &rel)
		if err != nil {
			b.log.DebugContext(ctx, "relations cache read failed", "word", word, "error", err)
		}
		if ok {
			return rel, nil
		}
	}

	var (
		syn     synonymResult
		assoc   []string
		assocBy string
		rhymes  []string
		errs    [3]error
	)
	var g errgroup.Group
	g.Go(func() error {
		syn, errs[0] = b.synonyms(ctx, word)
		return nil
	})
	g.Go(func() error {
		assoc, assocBy, errs[1] = b.associated(ctx, word)
		return nil
	})
	g.Go(func() error {
		if b.rhymes == nil {
			return nil
		}
		// Ask for extra: cleaning drops some.
		rhymes, errs[2] = b.rhymes.Rhymes(ctx, word, b.limits.MaxRhymes*2)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Relations{}, err
	}

	rel = Relations{
		Synonyms:   Clean(word, b.limits.MaxSynonyms, strongSynonyms[word], syn.synonyms),
		Antonyms:   Clean(word, b.limits.MaxAntonyms, strongAntonyms[word], syn.antonyms),
		Associated: Clean(word, b.limits.MaxAssociated, assoc),
		Rhymes:     cleanRhymes(word, b.limits.MaxRhymes, rhymes),
		Sources:    map[string]string{},
	}
	switch {
	case syn.source != "":
		rel.Sources["synonyms"] = syn.source
	case len(strongSynonyms[word]) > 0 || len(strongAntonyms[word]) > 0:
		rel.Sources["synonyms"] = SourceCurated
	}
	if assocBy != "" {
		rel.Sources["associated"] = assocBy
	}
	if len(rel.Rhymes) > 0 {
		rel.Sources["rhymes"] = SourceDatamuse
	}

	for _, err := range errs {
		if err != nil {
			b.log.WarnContext(ctx, "relation source failed", "word", word, "error", err)
			rel.Errors = append(rel.Errors, err)
		}
	}
	if len(rel.Errors) == 0 && b.cache != nil {
		if err := b.cache.SetJSON(ctx, cachePrefix+word, rel); err != nil {
			b.log.DebugContext(ctx, "relations cache write failed", "word", word, "error", err)
		}
	}
	return rel, nil
}

type synonymResult struct {
	synonyms, antonyms []string
	source             string
}

// synonyms asks the thesaurus first and falls back to the dictionary when
// the thesaurus is unavailable, fails or has nothing. An error is returned
// only when no source answered.
func (b *Builder) synonyms(ctx context.Context, word string) (synonymResult, error) {
	var thesaurusErr error
	if b.thesaurus != nil && b.thesaurus.Available() {
		syns, ants, err := b.thesaurus.Relations(ctx, word)
		switch {
		case err == nil && len(syns)+len(ants) > 0:
			return synonymResult{syns, ants, SourceMerriamWebster}, nil
		case err != nil && !errors.Is(err, lexicon.ErrNotFound):
			// A spent thesaurus budget is not a run-stopping rate limit;
			// the dictionary covers for it.
			if !errors.Is(err, lexicon.ErrRateLimited) {
				thesaurusErr = err
			}
			b.log.DebugContext(ctx, "thesaurus failed, falling back", "word", word, "error", err)
		}
	}
	if b.dictionary == nil {
		return synonymResult{}, thesaurusErr
	}
	syns, ants, err := b.dictionary.Relations(ctx, word)
	if err != nil {
		if errors.Is(err, lexicon.ErrNotFound) {
			return synonymResult{}, thesaurusErr
		}
		return synonymResult{}, fmt.Errorf("synonyms: %w", err)
	}
	if len(syns)+len(ants) == 0 {
		return synonymResult{}, nil
	}
	return synonymResult{syns, ants, SourceFreeDictionary}, nil
}

// associated returns the first non-empty answer among the association
// sources and the name of the source that gave it.
func (b *Builder) associated(ctx context.Context, word string) ([]string, string, error) {
	var errs []error
	for _, a := range b.associations {
		words, err := a.src.Associations(ctx, word, b.limits.MaxAssociated*2)
		if err != nil {
			if !errors.Is(err, lexicon.ErrNotFound) {
				errs = append(errs, fmt.Errorf("associations (%s): %w", a.name, err))
			}
			continue
		}
		if len(Clean(word, 1, words)) > 0 {
			return words, a.name, nil
		}
	}
	return nil, "", errors.Join(errs...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
