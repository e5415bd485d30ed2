// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon implements the dictionary, thesaurus and word-list
// sources that feed distractor generation and entry assembly: a
// frequency-ranked word pool, part-of-speech and category oracles, and
// relationship sources.
//
// Every HTTP client honours the shared retry policy in internal/httputil and
// consults an optional Cache before issuing requests.
package lexicon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/wordbank/internal/httputil"
	"github.com/pdiddy/wordbank/pkg/types"
)

var (
	// ErrNotFound means the source has no entry for the word.
	ErrNotFound = errors.New("word not found")

	// ErrRateLimited means the source refused the request after retries or
	// the local request budget is spent. Callers should stop and resume later.
	ErrRateLimited = errors.New("rate limited")

	// ErrExcluded means the word exists but only as a function word
	// (preposition, pronoun and the like).
	ErrExcluded = errors.New("word excluded")
)

// Cache is a JSON key/value cache. *store.Store satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
}

// HTTP carries the settings shared by every HTTP source.
type HTTP struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int
}

const defaultUserAgent = "wordbank/0.1"

// NewHTTP builds an HTTP from configuration.
func NewHTTP(cfg types.HTTPConfig) HTTP {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return HTTP{
		Client:     &http.Client{Timeout: timeout},
		UserAgent:  ua,
		MaxRetries: cfg.MaxRetries,
	}
}

// get issues a GET and returns the body of a 200 response. 404 maps to
// ErrNotFound and an exhausted 429 to ErrRateLimited.
func (h HTTP) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	ua := h.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, h.MaxRetries)
	if err != nil {
		// url.Error repeats the full URL, query keys included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("request %s%s: %w", req.URL.Host, req.URL.Path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%s: %w", req.URL.Host, ErrRateLimited)
	default:
		return nil, fmt.Errorf("%s returned HTTP %d", req.URL.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", req.URL.Host, err)
	}
	return body, nil
}

// getJSON issues a GET and decodes a 200 response into v.
func (h HTTP) getJSON(ctx context.Context, rawURL string, v any) error {
	body, err := h.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// cached returns the value stored under key, or calls fetch and stores its
// result. Cache failures are logged and never fail the lookup. Errors from
// fetch are not cached; a fetcher that wants a negative answer remembered
// returns the zero value with a nil error.
func cached[T any](ctx context.Context, c Cache, key string, fetch func() (T, error)) (T, error) {
	var v T
	if c != nil {
		ok, err := c.GetJSON(ctx, key, &v)
		if err != nil {
			slog.DebugContext(ctx, "cache read failed", "key", key, "error", err)
		}
		if ok {
			return v, nil
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	if c != nil {
		if err := c.SetJSON(ctx, key, v); err != nil {
			slog.DebugContext(ctx, "cache write failed", "key", key, "error", err)
		}
	}
	return v, nil
}
