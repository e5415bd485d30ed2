// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pdiddy/wordbank/internal/distractor"
	"github.com/pdiddy/wordbank/internal/lexicon"
	"github.com/pdiddy/wordbank/internal/relations"
	"github.com/pdiddy/wordbank/internal/sound"
	"github.com/pdiddy/wordbank/internal/store"
	"github.com/pdiddy/wordbank/internal/wordbank"
	"github.com/pdiddy/wordbank/pkg/types"
)

// app wires the store and lexicon sources shared by the subcommands.
type app struct {
	cfg   types.Config
	log   *slog.Logger
	store *store.Store

	http     lexicon.HTTP
	freq     *lexicon.FrequencyList
	dict     *lexicon.FreeDictionary
	datamuse *lexicon.Datamuse
}

// newApp loads configuration and opens the store.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	h := lexicon.NewHTTP(cfg.HTTP)
	return &app{
		cfg:      cfg,
		log:      slog.Default(),
		store:    s,
		http:     h,
		freq:     lexicon.NewFrequencyList(h, s),
		dict:     &lexicon.FreeDictionary{HTTP: h, Cache: s},
		datamuse: &lexicon.Datamuse{HTTP: h, Cache: s},
	}, nil
}

func (a *app) Close() error { return a.store.Close() }

// poolOptions selects where distractor candidates and part-of-speech
// answers come from.
type poolOptions struct {
	language string
	poolFile string
	offline  bool

	// skipPool uses an empty pool, for commands that only validate.
	skipPool bool
}

// generator builds a distractor generator. English uses the remote
// frequency list, dictionary and Datamuse categories. Other languages need
// a local pool file; Japanese parts of speech come from the offline
// tokenizer.
func (a *app) generator(ctx context.Context, o poolOptions) (*distractor.Generator, error) {
	lang := o.language
	if lang == "" {
		lang = a.cfg.Generation.Language
	}

	var pool *lexicon.FrequencyList
	switch {
	case o.skipPool:
		pool = lexicon.NewFrequencyList(a.http, nil)
		pool.Load("")
	case o.poolFile != "":
		data, err := os.ReadFile(o.poolFile)
		if err != nil {
			return nil, fmt.Errorf("reading pool file: %w", err)
		}
		pool = lexicon.NewFrequencyList(a.http, nil)
		pool.Load(string(data))
	case lang != sound.DefaultLanguage:
		return nil, fmt.Errorf("language %q needs --pool: the built-in frequency list is English", lang)
	default:
		pool = a.freq
		if err := pool.Fetch(ctx); err != nil {
			return nil, err
		}
	}

	var (
		pos distractor.POSResolver
		cat distractor.CategoryResolver
	)
	switch {
	case lang == "ja":
		jp, err := lexicon.NewJapanesePOS()
		if err != nil {
			return nil, err
		}
		pos = jp
	case lang == sound.DefaultLanguage && !o.offline:
		pos, cat = a.dict, a.datamuse
	}

	return distractor.New(pool, pos, cat,
		distractor.WithDetector(sound.New(lang)),
		distractor.WithConfig(a.cfg.Distractors),
		distractor.WithLogger(a.log.With("component", "distractor")),
	), nil
}

// relations builds the relations builder: Merriam-Webster first when a key
// is configured, Free Dictionary as fallback, USF norms before Datamuse for
// associations.
func (a *app) relations() *relations.Builder {
	rc := a.cfg.Relations
	opts := []relations.Option{
		relations.WithDictionary(a.dict),
		relations.WithRhymes(a.datamuse),
		relations.WithLimits(rc),
		relations.WithCache(a.store),
		relations.WithLogger(a.log.With("component", "relations")),
	}
	if rc.MWThesaurusKey != "" {
		opts = append(opts, relations.WithThesaurus(
			lexicon.NewMWThesaurus(a.http, a.store, rc.MWThesaurusKey, rc.MWPerMinute, rc.MWPerDay)))
	}
	if rc.USFDir != "" {
		opts = append(opts, relations.WithAssociations(relations.SourceUSF, lexicon.NewUSFNorms(rc.USFDir)))
	}
	opts = append(opts, relations.WithAssociations(relations.SourceDatamuse, a.datamuse))
	return relations.NewBuilder(opts...)
}

// builder wires a wordbank builder around gen.
func (a *app) builder(gen *distractor.Generator, gc types.GenerationConfig) *wordbank.Builder {
	opts := []wordbank.Option{
		wordbank.WithRelations(a.relations()),
		wordbank.WithCategories(a.datamuse),
		wordbank.WithSentences(&lexicon.Tatoeba{HTTP: a.http, Cache: a.store}),
		wordbank.WithRanker(a.freq),
		wordbank.WithMaster(a.store),
		wordbank.WithGeneration(gc),
		wordbank.WithLogger(a.log.With("component", "wordbank")),
	}
	if gc.IdiomDir != "" {
		opts = append(opts, wordbank.WithPhrases(lexicon.NewIdioms(gc.IdiomDir, gc.Language)))
	}
	return wordbank.NewBuilder(a.dict, gen, opts...)
}
