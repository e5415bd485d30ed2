// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wordbank/internal/distractor"
	"github.com/pdiddy/wordbank/internal/lexicon"
)

var distractorsCmd = &cobra.Command{
	Use:   "distractors WORD",
	Short: "Generate distractors for one word",
	Long: `Distractors picks up to ten frequent words of similar length that a
reader could confuse with WORD but that break none of the exclusion rules:
no synonyms, antonyms or associated words, no shared starting sound, no
rhymes, no shared category, and the same part of speech.

Relationship words come from --avoid and --rhymes, and with --fetch also
from the dictionary, thesaurus and Datamuse.`,
	Args: cobra.ExactArgs(1),
	RunE: runDistractors,
}

func init() {
	addTargetFlags(distractorsCmd)
	distractorsCmd.Flags().Bool("fetch", false, "fetch relationships, category and part of speech from the lexicon sources")

	rootCmd.AddCommand(distractorsCmd)
}

// addTargetFlags registers the flags describing a target word.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("pos", "", "part of speech: noun, verb, adjective, adverb")
	cmd.Flags().StringSlice("avoid", nil, "synonyms, antonyms and associated words to keep out")
	cmd.Flags().StringSlice("rhymes", nil, "known rhymes of the word")
	cmd.Flags().String("category", "", "semantic category of the word")
	cmd.Flags().String("language", "", "sound table and pool language: en, de, ja (default from config)")
	cmd.Flags().String("pool", "", "local word list, most frequent first, one word per line")
	cmd.Flags().Bool("offline", false, "skip part-of-speech and category lookups for candidates")
	cmd.Flags().Bool("json", false, "output results as JSON")
}

// targetFromFlags reads the target flags and, with fetch, completes them
// from the lexicon sources. Lookup failures are reported and ignored.
func targetFromFlags(ctx context.Context, cmd *cobra.Command, a *app, word string, fetch bool) distractor.Target {
	t := distractor.Target{Word: strings.TrimSpace(word)}
	t.POS, _ = cmd.Flags().GetString("pos")
	t.Avoid, _ = cmd.Flags().GetStringSlice("avoid")
	t.Rhymes, _ = cmd.Flags().GetStringSlice("rhymes")
	t.Category, _ = cmd.Flags().GetString("category")
	if !fetch {
		return t
	}

	if t.POS == "" {
		def, err := a.dict.Lookup(ctx, t.Word)
		switch {
		case err == nil:
			t.POS = def.POS
		case !errors.Is(err, lexicon.ErrNotFound):
			fmt.Fprintf(os.Stderr, "warning: definition lookup failed: %v\n", err)
		}
	}
	rel, err := a.relations().Build(ctx, t.Word)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: relationship lookup failed: %v\n", err)
	} else {
		if rerr := rel.Err(); rerr != nil {
			fmt.Fprintf(os.Stderr, "warning: some relationship sources failed: %v\n", rerr)
		}
		t.Avoid = append(t.Avoid, rel.Avoid()...)
		t.Rhymes = append(t.Rhymes, rel.Rhymes...)
	}
	if t.Category == "" {
		cat, err := a.datamuse.FetchCategory(ctx, t.Word, t.POS)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: category lookup failed: %v\n", err)
		}
		t.Category = cat
	}
	return t
}

func poolFromFlags(cmd *cobra.Command) poolOptions {
	var o poolOptions
	o.language, _ = cmd.Flags().GetString("language")
	o.poolFile, _ = cmd.Flags().GetString("pool")
	o.offline, _ = cmd.Flags().GetBool("offline")
	return o
}

type distractorsOutput struct {
	Word        string   `json:"word"`
	POS         string   `json:"pos,omitempty"`
	Category    string   `json:"category,omitempty"`
	Avoid       []string `json:"avoid"`
	Rhymes      []string `json:"rhymes"`
	Distractors []string `json:"distractors"`
}

func runDistractors(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	fetch, _ := cmd.Flags().GetBool("fetch")
	asJSON, _ := cmd.Flags().GetBool("json")

	gen, err := a.generator(ctx, poolFromFlags(cmd))
	if err != nil {
		return err
	}
	t := targetFromFlags(ctx, cmd, a, args[0], fetch)
	got := gen.Generate(ctx, t)

	out := distractorsOutput{
		Word:        t.Word,
		POS:         t.POS,
		Category:    t.Category,
		Avoid:       nonNil(t.Avoid),
		Rhymes:      nonNil(t.Rhymes),
		Distractors: got,
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Distractors for %s", out.Word)
	if out.POS != "" {
		fmt.Fprintf(w, " (%s)", out.POS)
	}
	fmt.Fprintln(w, ":")
	for i, d := range got {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, d)
	}
	if want := gen.Config().Max; len(got) < want {
		fmt.Fprintf(w, "warning: only %d of %d distractors found\n", len(got), want)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
