package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lingo-quiz/internal/cache"
	"lingo-quiz/internal/config"
	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/logger"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	maxSynonyms    = 5
)

// FreeDictionaryClient implements domain.DictionaryClient against the Free Dictionary API.
// Entries are cached when a cache is configured.
type FreeDictionaryClient struct {
	baseURL    string
	httpClient *http.Client
	cache      domain.Cache
	cacheTTL   time.Duration
	sfGroup    singleflight.Group
}

// NewFreeDictionaryClient creates a client. cache may be nil.
func NewFreeDictionaryClient(cfg config.DictionaryConfig, cacheTTL time.Duration, c domain.Cache) *FreeDictionaryClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FreeDictionaryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

type apiDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiPhonetic struct {
	Text string `json:"text"`
}

type apiEntry struct {
	Word      string        `json:"word"`
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

// Lookup returns the first entry for word. Missing words yield domain.ErrWordNotFound.
func (c *FreeDictionaryClient) Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return nil, domain.ErrWordNotFound
	}
	cacheKey := cache.DictionaryKey(normalized)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			var entry domain.DictionaryEntry
			errDecode := json.Unmarshal([]byte(cached), &entry)
			if errDecode == nil {
				return &entry, nil
			}
			logger.Get().Warn("Failed to decode cached dictionary entry", zap.String("cacheKey", cacheKey), zap.Error(errDecode))
		case !errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Warn("Failed to read dictionary cache", zap.String("cacheKey", cacheKey), zap.Error(err))
		}
	}

	// The shared fetch outlives any single caller; the http client timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.sfGroup.DoChan(cacheKey, func() (interface{}, error) {
		entry, fetchErr := c.fetch(fetchCtx, normalized)
		if fetchErr != nil {
			return nil, fetchErr
		}

		if c.cache != nil {
			if data, errEncode := json.Marshal(entry); errEncode == nil {
				if errSet := c.cache.Set(fetchCtx, cacheKey, string(data), c.cacheTTL); errSet != nil {
					logger.Get().Warn("Failed to cache dictionary entry", zap.String("cacheKey", cacheKey), zap.Error(errSet))
				}
			}
		}
		return entry, nil
	})

	var res interface{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		res = r.Val
	}

	if entry, ok := res.(*domain.DictionaryEntry); ok {
		// singleflight shares the pointer between callers.
		copied := *entry
		return &copied, nil
	}
	return nil, fmt.Errorf("unexpected type from singleflight.Do for dictionary lookup: %T", res)
}

func (c *FreeDictionaryClient) fetch(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dictionary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrWordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dictionary returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrWordNotFound
	}
	return toDictionaryEntry(word, &entries[0]), nil
}

func toDictionaryEntry(word string, e *apiEntry) *domain.DictionaryEntry {
	entry := &domain.DictionaryEntry{Word: word}

	if len(e.Meanings) > 0 {
		first := e.Meanings[0]
		entry.PartOfSpeech = first.PartOfSpeech
		if len(first.Definitions) > 0 {
			entry.Definition = first.Definitions[0].Definition
			entry.Example = first.Definitions[0].Example
		}
	}

	entry.Pronunciation = e.Phonetic
	if entry.Pronunciation == "" {
		for _, p := range e.Phonetics {
			if p.Text != "" {
				entry.Pronunciation = p.Text
				break
			}
		}
	}

	var synonyms []string
collect:
	for _, m := range e.Meanings {
		for _, d := range m.Definitions {
			for _, s := range d.Synonyms {
				synonyms = append(synonyms, s)
				if len(synonyms) == maxSynonyms {
					break collect
				}
			}
		}
	}
	entry.Synonyms = strings.Join(synonyms, ", ")

	return entry
}
