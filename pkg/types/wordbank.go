// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the wordbank pipeline:
// word entries, the wordbank document, and per-stage configuration.
package types

import "time"

// Parts of speech used across the pipeline.
const (
	POSNoun      = "noun"
	POSVerb      = "verb"
	POSAdjective = "adjective"
	POSAdverb    = "adverb"
)

// UnrankedFrequency is the rank given to words missing from the frequency list.
const UnrankedFrequency = 99999

// MinSentences and MinDistractors define a complete entry.
const (
	MinSentences   = 2
	MinDistractors = 10
)

// Visual is the picture shown for a word: an emoji or an image with attribution.
type Visual struct {
	Emoji       string `json:"emoji" yaml:"emoji"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
	Attribution string `json:"attribution,omitempty" yaml:"attribution,omitempty"`
}

// Relationships groups the words related to an entry.
type Relationships struct {
	Synonyms   []string `json:"synonyms" yaml:"synonyms"`
	Antonyms   []string `json:"antonyms" yaml:"antonyms"`
	Associated []string `json:"associated" yaml:"associated"`
	Rhymes     []string `json:"rhymes" yaml:"rhymes"`
}

// WordEntry is one complete wordbank record.
type WordEntry struct {
	ID            string            `json:"id" yaml:"id"`
	Word          string            `json:"word" yaml:"word"`
	PartOfSpeech  string            `json:"partOfSpeech" yaml:"part_of_speech"`
	Definition    string            `json:"definition" yaml:"definition"`
	Category      string            `json:"category" yaml:"category"`
	SoundGroup    string            `json:"soundGroup" yaml:"sound_group"`
	Visual        Visual            `json:"visual" yaml:"visual"`
	Relationships Relationships     `json:"relationships" yaml:"relationships"`
	Distractors   []string          `json:"distractors" yaml:"distractors"`
	Sentences     []string          `json:"sentences" yaml:"sentences"`
	Phrases       []string          `json:"phrases" yaml:"phrases"`
	FrequencyRank int               `json:"frequencyRank" yaml:"frequency_rank"`
	NeedsReview   bool              `json:"needsReview" yaml:"needs_review"`
	Sources       map[string]string `json:"sources" yaml:"sources"`
}

// IsComplete reports whether the entry has every field a therapist needs:
// a word, a definition, a visual, two sentences and ten distractors. Nouns
// also need a category.
func (e *WordEntry) IsComplete() bool {
	hasVisual := e.Visual.Emoji != "" || e.Visual.ImageURL != ""
	complete := e.Word != "" &&
		e.Definition != "" &&
		hasVisual &&
		len(e.Sentences) >= MinSentences &&
		len(e.Distractors) >= MinDistractors
	if e.PartOfSpeech == POSNoun {
		return complete && e.Category != ""
	}
	return complete
}

// ReviewItem records why a word was flagged for manual attention.
type ReviewItem struct {
	Word    string `json:"word" yaml:"word"`
	Reason  string `json:"reason" yaml:"reason"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Wordbank is the document written by a generation run.
type Wordbank struct {
	Version          string      `json:"version" yaml:"version"`
	Language         string      `json:"language" yaml:"language"`
	GeneratedAt      time.Time   `json:"generatedAt" yaml:"generated_at"`
	GenerationMethod string      `json:"generationMethod" yaml:"generation_method"`
	RunID            string      `json:"runId,omitempty" yaml:"run_id,omitempty"`
	TotalEntries     int         `json:"totalEntries" yaml:"total_entries"`
	Words            []WordEntry `json:"words" yaml:"words"`
}
