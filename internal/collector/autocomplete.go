// Package collector fetches autocomplete suggestions from the Google
// suggest endpoint, one HTTP request per expanded query variant.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"suggestwatch/internal/lang"
	"suggestwatch/internal/model"
	"suggestwatch/internal/watch"
)

// DefaultBaseURL is the public Google autocomplete endpoint. The firefox
// client parameter selects the plain JSON response format.
const DefaultBaseURL = "https://suggestqueries.google.com/complete/search"

const defaultTimeout = 10 * time.Second

// Config holds the tunables for an AutocompleteClient.
type Config struct {
	BaseURL      string        // Defaults to DefaultBaseURL
	UserAgent    string        // Sent verbatim on every request
	RequestDelay time.Duration // Pause after each request, per worker
	MaxWorkers   int           // Concurrent request cap, minimum 1
	Timeout      time.Duration // Per-request timeout, defaults to 10s
}

// AutocompleteClient collects suggestion batches for a brand. Individual
// query failures are recorded inline on the QueryResult so one flaky
// request never aborts a scan.
type AutocompleteClient struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	requestDelay time.Duration
	maxWorkers   int64
	clock        watch.Clock
}

// NewAutocompleteClient creates a collector from cfg, applying defaults for
// zero-valued fields.
func NewAutocompleteClient(cfg Config) *AutocompleteClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}

	return &AutocompleteClient{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		userAgent:    cfg.UserAgent,
		requestDelay: cfg.RequestDelay,
		maxWorkers:   int64(cfg.MaxWorkers),
		clock:        watch.RealClock{},
	}
}

// QueriesForBrand expands a brand's keywords into the deduplicated query
// list a scan will issue, in deterministic order.
func QueriesForBrand(brand model.Brand) []string {
	var queries []string
	for _, kw := range brand.Keywords {
		queries = append(queries, lang.QueryVariants(kw, brand.ExpandAZ, brand.ExpandTurkish)...)
	}
	return lang.Dedupe(queries)
}

// CollectBrand issues every query variant for the brand, at most MaxWorkers
// in flight, and returns one QueryResult per query in query order. Only
// context cancellation fails the collection as a whole.
func (c *AutocompleteClient) CollectBrand(ctx context.Context, brand model.Brand, progress watch.ProgressFunc) ([]model.QueryResult, error) {
	queries := QueriesForBrand(brand)
	results := make([]model.QueryResult, len(queries))

	sem := semaphore.NewWeighted(c.maxWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0

	for i, query := range queries {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("collection cancelled: %w", err)
		}

		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			defer sem.Release(1)

			results[i] = c.fetch(ctx, query, brand.Language, brand.Country)

			mu.Lock()
			completed++
			if progress != nil {
				progress(completed, len(queries), query)
			}
			mu.Unlock()

			// Rate limiting: each worker pauses after its request.
			if c.requestDelay > 0 {
				select {
				case <-time.After(c.requestDelay):
				case <-ctx.Done():
				}
			}
		}(i, query)
	}

	wg.Wait()
	return results, nil
}

// fetch performs one autocomplete request. Failures are recorded on the
// returned QueryResult rather than returned as errors.
func (c *AutocompleteClient) fetch(ctx context.Context, query, language, country string) model.QueryResult {
	result := model.QueryResult{
		Query:       query,
		Source:      "autocomplete",
		CollectedAt: c.clock.Now().UTC(),
	}

	params := url.Values{}
	params.Set("client", "firefox")
	params.Set("q", query)
	if language != "" {
		params.Set("hl", language)
	}
	if country != "" {
		params.Set("gl", country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		result.Error = fmt.Sprintf("building request: %v", err)
		return result
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return result
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("reading response: %v", err)
		return result
	}

	suggestions, err := parseResponse(body)
	if err != nil {
		result.Error = fmt.Sprintf("parsing response: %v", err)
		return result
	}

	result.Suggestions = suggestions
	return result
}

// parseResponse decodes the firefox-format payload: a two-element JSON
// array of [echoed query, [suggestion, ...]].
func parseResponse(body []byte) ([]string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("payload has %d elements, want at least 2", len(payload))
	}

	var suggestions []string
	if err := json.Unmarshal(payload[1], &suggestions); err != nil {
		return nil, fmt.Errorf("malformed suggestion list: %w", err)
	}
	return suggestions, nil
}

// Compile-time check that AutocompleteClient implements watch.Collector.
var _ watch.Collector = (*AutocompleteClient)(nil)
