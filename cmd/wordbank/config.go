// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/wordbank/internal/secrets"
	"github.com/pdiddy/wordbank/pkg/types"
)

// setDefaults registers every config key so that file values, WORDBANK_*
// environment variables and flags all resolve through viper.
func setDefaults() {
	d := types.DefaultConfig()
	viper.SetDefault("log_level", d.LogLevel)

	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", d.HTTP.UserAgent)
	viper.SetDefault("http.max_retries", d.HTTP.MaxRetries)

	viper.SetDefault("distractors.tolerances", d.Distractors.Tolerances)
	viper.SetDefault("distractors.max", d.Distractors.Max)
	viper.SetDefault("distractors.max_reuse", d.Distractors.MaxReuse)
	viper.SetDefault("distractors.pool_limit", d.Distractors.PoolLimit)
	viper.SetDefault("distractors.max_length_diff", d.Distractors.MaxLengthDiff)

	viper.SetDefault("relations.mw_thesaurus_key", "")
	viper.SetDefault("relations.mw_per_minute", d.Relations.MWPerMinute)
	viper.SetDefault("relations.mw_per_day", d.Relations.MWPerDay)
	viper.SetDefault("relations.usf_dir", "")
	viper.SetDefault("relations.max_synonyms", d.Relations.MaxSynonyms)
	viper.SetDefault("relations.max_antonyms", d.Relations.MaxAntonyms)
	viper.SetDefault("relations.max_associated", d.Relations.MaxAssociated)
	viper.SetDefault("relations.max_rhymes", d.Relations.MaxRhymes)

	viper.SetDefault("store.dir", d.Store.Dir)
	viper.SetDefault("store.cache_expiry", d.Store.CacheExpiry)

	viper.SetDefault("generation.language", d.Generation.Language)
	viper.SetDefault("generation.api_delay", d.Generation.APIDelay)
	viper.SetDefault("generation.use_master", true)
	viper.SetDefault("generation.force", false)
	viper.SetDefault("generation.idiom_dir", d.Generation.IdiomDir)
}

// loadConfig reads the resolved configuration and validates it. API keys
// in the secrets directory take precedence over config values.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		LogLevel: viper.GetString("log_level"),
		HTTP: types.HTTPConfig{
			Timeout:    viper.GetDuration("http.timeout"),
			UserAgent:  viper.GetString("http.user_agent"),
			MaxRetries: viper.GetInt("http.max_retries"),
		},
		Distractors: types.DistractorConfig{
			Tolerances:    viper.GetIntSlice("distractors.tolerances"),
			Max:           viper.GetInt("distractors.max"),
			MaxReuse:      viper.GetInt("distractors.max_reuse"),
			PoolLimit:     viper.GetInt("distractors.pool_limit"),
			MaxLengthDiff: viper.GetInt("distractors.max_length_diff"),
		},
		Relations: types.RelationsConfig{
			MWThesaurusKey: viper.GetString("relations.mw_thesaurus_key"),
			MWPerMinute:    viper.GetInt("relations.mw_per_minute"),
			MWPerDay:       viper.GetInt("relations.mw_per_day"),
			USFDir:         viper.GetString("relations.usf_dir"),
			MaxSynonyms:    viper.GetInt("relations.max_synonyms"),
			MaxAntonyms:    viper.GetInt("relations.max_antonyms"),
			MaxAssociated:  viper.GetInt("relations.max_associated"),
			MaxRhymes:      viper.GetInt("relations.max_rhymes"),
		},
		Store: types.StoreConfig{
			Dir:         viper.GetString("store.dir"),
			CacheExpiry: viper.GetDuration("store.cache_expiry"),
		},
		Generation: types.GenerationConfig{
			Language:  viper.GetString("generation.language"),
			APIDelay:  viper.GetDuration("generation.api_delay"),
			UseMaster: viper.GetBool("generation.use_master"),
			Force:     viper.GetBool("generation.force"),
			IdiomDir:  viper.GetString("generation.idiom_dir"),
		},
	}

	if key := secrets.Get(loadedSecrets, secrets.MWThesaurusKey, "MW_THESAURUS_KEY"); key != "" {
		cfg.Relations.MWThesaurusKey = key
	}
	if email := secrets.Get(loadedSecrets, secrets.ContactEmail, ""); email != "" {
		cfg.HTTP.UserAgent += " (mailto:" + email + ")"
	}
	return cfg, cfg.Validate()
}
