// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by every lexicon client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "wordbank/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DistractorConfig holds the policy knobs of the distractor generator.
type DistractorConfig struct {
	// Tolerances are the widening length steps tried in order (default 0, 1, 2).
	Tolerances []int `json:"tolerances" yaml:"tolerances"`

	// Max is the number of distractors wanted per word (default 10).
	Max int `json:"max" yaml:"max"`

	// MaxReuse is how many times one word may be emitted as a distractor
	// between ledger resets (default 3).
	MaxReuse int `json:"max_reuse" yaml:"max_reuse"`

	// PoolLimit caps the candidates requested per tolerance level (default 200).
	PoolLimit int `json:"pool_limit" yaml:"pool_limit"`

	// MaxLengthDiff is the length band enforced by validation (default 2).
	MaxLengthDiff int `json:"max_length_diff" yaml:"max_length_diff"`
}

// DefaultDistractorConfig returns the reference policy.
func DefaultDistractorConfig() DistractorConfig {
	return DistractorConfig{
		Tolerances:    []int{0, 1, 2},
		Max:           10,
		MaxReuse:      3,
		PoolLimit:     200,
		MaxLengthDiff: 2,
	}
}

// WithDefaults fills zero fields from DefaultDistractorConfig.
func (c DistractorConfig) WithDefaults() DistractorConfig {
	d := DefaultDistractorConfig()
	if len(c.Tolerances) == 0 {
		c.Tolerances = d.Tolerances
	}
	if c.Max <= 0 {
		c.Max = d.Max
	}
	if c.MaxReuse <= 0 {
		c.MaxReuse = d.MaxReuse
	}
	if c.PoolLimit <= 0 {
		c.PoolLimit = d.PoolLimit
	}
	if c.MaxLengthDiff <= 0 {
		c.MaxLengthDiff = d.MaxLengthDiff
	}
	return c
}

// RelationsConfig holds settings for gathering relationship words.
type RelationsConfig struct {
	// MWThesaurusKey enables the Merriam-Webster thesaurus when set.
	MWThesaurusKey string `json:"mw_thesaurus_key,omitempty" yaml:"mw_thesaurus_key,omitempty"`

	// MWPerMinute and MWPerDay bound thesaurus requests (defaults 30 and 1000).
	MWPerMinute int `json:"mw_per_minute" yaml:"mw_per_minute"`
	MWPerDay    int `json:"mw_per_day" yaml:"mw_per_day"`

	// USFDir is a directory of USF free-association CSV files. Empty
	// disables the source and Datamuse associations are used instead.
	USFDir string `json:"usf_dir,omitempty" yaml:"usf_dir,omitempty"`

	// Limits per relationship list (defaults 5, 5, 6, 7).
	MaxSynonyms   int `json:"max_synonyms" yaml:"max_synonyms"`
	MaxAntonyms   int `json:"max_antonyms" yaml:"max_antonyms"`
	MaxAssociated int `json:"max_associated" yaml:"max_associated"`
	MaxRhymes     int `json:"max_rhymes" yaml:"max_rhymes"`
}

// StoreConfig locates the SQLite cache and master wordbank.
type StoreConfig struct {
	// Dir contains wordbank.db (default "data").
	Dir string `json:"dir" yaml:"dir"`

	// CacheExpiry is how long cached API responses stay valid (default 24h).
	CacheExpiry time.Duration `json:"cache_expiry" yaml:"cache_expiry"`
}

// GenerationConfig holds settings for a wordbank generation run.
type GenerationConfig struct {
	// Language selects the sound table and wordbank language (default "en").
	Language string `json:"language" yaml:"language"`

	// APIDelay is the pause between consecutive words (default 300ms).
	APIDelay time.Duration `json:"api_delay" yaml:"api_delay"`

	// UseMaster reuses approved master entries instead of regenerating them.
	UseMaster bool `json:"use_master" yaml:"use_master"`

	// Force regenerates words even when they are approved.
	Force bool `json:"force" yaml:"force"`

	// Count stops a run once this many entries are built. Zero processes
	// every requested word.
	Count int `json:"count" yaml:"count"`

	// IdiomDir holds idioms_<language>.txt phrase lists (default "data").
	IdiomDir string `json:"idiom_dir" yaml:"idiom_dir"`
}

// Config groups every stage configuration.
type Config struct {
	LogLevel    string           `json:"log_level" yaml:"log_level"`
	HTTP        HTTPConfig       `json:"http" yaml:"http"`
	Distractors DistractorConfig `json:"distractors" yaml:"distractors"`
	Relations   RelationsConfig  `json:"relations" yaml:"relations"`
	Store       StoreConfig      `json:"store" yaml:"store"`
	Generation  GenerationConfig `json:"generation" yaml:"generation"`
}

// DefaultConfig returns the configuration used when no file or flag
// overrides a value.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		HTTP: HTTPConfig{
			Timeout:    15 * time.Second,
			UserAgent:  "wordbank/0.1",
			MaxRetries: 3,
		},
		Distractors: DefaultDistractorConfig(),
		Relations: RelationsConfig{
			MWPerMinute:   30,
			MWPerDay:      1000,
			MaxSynonyms:   5,
			MaxAntonyms:   5,
			MaxAssociated: 6,
			MaxRhymes:     7,
		},
		Store: StoreConfig{
			Dir:         "data",
			CacheExpiry: 24 * time.Hour,
		},
		Generation: GenerationConfig{
			Language: "en",
			APIDelay: 300 * time.Millisecond,
			IdiomDir: "data",
		},
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.LogLevel != "" && !logLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel))
	}
	if c.HTTP.Timeout < 0 {
		errs = append(errs, errors.New("http.timeout must not be negative"))
	}
	if c.HTTP.MaxRetries < 0 {
		errs = append(errs, errors.New("http.max_retries must not be negative"))
	}
	for _, t := range c.Distractors.Tolerances {
		if t < 0 {
			errs = append(errs, fmt.Errorf("distractors.tolerances: %d is negative", t))
		}
	}
	if c.Distractors.Max < 0 || c.Distractors.MaxReuse < 0 || c.Distractors.PoolLimit < 0 {
		errs = append(errs, errors.New("distractors: max, max_reuse and pool_limit must not be negative"))
	}
	if c.Relations.MWPerMinute < 0 || c.Relations.MWPerDay < 0 {
		errs = append(errs, errors.New("relations: request budgets must not be negative"))
	}
	if c.Store.CacheExpiry < 0 {
		errs = append(errs, errors.New("store.cache_expiry must not be negative"))
	}
	if c.Generation.APIDelay < 0 {
		errs = append(errs, errors.New("generation.api_delay must not be negative"))
	}
	if c.Generation.Count < 0 {
		errs = append(errs, errors.New("generation.count must not be negative"))
	}
	return errors.Join(errs...)
}
