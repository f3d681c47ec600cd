// Package leaderboard fetches the ranked model names from LM Arena.
//
// The JSON API is tried first. When it fails or returns nothing, the public
// leaderboard page is scraped instead. Both sources are best effort: failures
// are logged and an empty result is returned, never an error.
package leaderboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"arenasync/internal/core"
	"arenasync/internal/util"

	"github.com/tidwall/gjson"
)

// FetcherConfig configuration for Fetcher
type FetcherConfig struct {
	APIURL     string
	PageURL    string
	TopN       int
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    core.MetricsCollector
	Logger     core.Logger
}

// Fetcher retrieves the leaderboard with API to page fallback
type Fetcher struct {
	apiURL     string
	pageURL    string
	topN       int
	timeout    time.Duration
	httpClient *http.Client
	metrics    core.MetricsCollector
	logger     core.Logger
}

// NewFetcher creates a new Fetcher
func NewFetcher(cfg FetcherConfig) *Fetcher {
	f := &Fetcher{
		apiURL:     cfg.APIURL,
		pageURL:    cfg.PageURL,
		topN:       cfg.TopN,
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
	if f.topN <= 0 {
		f.topN = core.DefaultTopN
	}
	if f.timeout <= 0 {
		f.timeout = core.FetchTimeout
	}
	if f.httpClient == nil {
		f.httpClient = http.DefaultClient
	}
	if f.metrics == nil {
		f.metrics = &core.NopMetrics{}
	}
	if f.logger == nil {
		f.logger = &core.NopLogger{}
	}
	return f
}

// Fetch returns up to topN ranked names. An empty result means every source failed.
func (f *Fetcher) Fetch(ctx context.Context) core.FetchResult {
	names, err := f.fetchFromAPI(ctx)
	if err == nil && len(names) > 0 {
		f.logger.Info("Fetched %d models from leaderboard API", len(names))
		return core.FetchResult{Names: names, Source: core.SourceAPI}
	}
	if err == nil {
		err = core.ErrNoModelNames
	}
	f.logger.Warn("Leaderboard API request failed: %v, trying leaderboard page...", err)

	names, err = f.fetchFromPage(ctx)
	if err == nil && len(names) > 0 {
		f.logger.Info("Fetched %d models from leaderboard page", len(names))
		return core.FetchResult{Names: names, Source: core.SourcePage}
	}
	if err == nil {
		err = core.ErrNoModelNames
	}
	f.logger.Error("Leaderboard page fallback failed: %v", err)

	return core.FetchResult{Source: core.SourceNone}
}

func (f *Fetcher) fetchFromAPI(ctx context.Context) ([]string, error) {
	start := time.Now()
	body, err := f.get(ctx, f.apiURL, "application/json")
	if err != nil {
		f.metrics.RecordFetch(core.SourceAPI, time.Since(start), false)
		return nil, err
	}

	names, err := ParseAPIResponse(body, f.topN)
	if err != nil {
		f.logger.Debug("Unparsable API body: %s", util.TruncateString(string(body), 200, 50, " ... "))
	}
	f.metrics.RecordFetch(core.SourceAPI, time.Since(start), err == nil && len(names) > 0)
	return names, err
}

func (f *Fetcher) fetchFromPage(ctx context.Context) ([]string, error) {
	start := time.Now()
	body, err := f.get(ctx, f.pageURL, "text/html")
	if err != nil {
		f.metrics.RecordFetch(core.SourcePage, time.Since(start), false)
		return nil, err
	}
	html := string(body)

	if data, ok := ExtractEmbeddedData(html); ok {
		f.logger.Debug("Embedded page data found: %d top-level keys %v", len(data.TopLevelKeys), data.TopLevelKeys)
		f.logger.Warn("Embedded page data layout is not parsed, check the page structure manually")
	} else {
		f.logger.Debug("Embedded page data unavailable")
	}

	names := ExtractModelNames(html, f.topN)
	f.metrics.RecordFetch(core.SourcePage, time.Since(start), len(names) > 0)
	return names, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := util.NewGetRequest(ctx, rawURL, accept)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req) //nolint:gosec // Request target is restricted by util.ValidateRequestTarget.
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	f.logger.Debug("GET %s -> %d", rawURL, resp.StatusCode)
	return util.ReadResponseBody(resp)
}

// ParseAPIResponse reads names from a JSON array of records, preferring "model" over "name".
// The first topN non-empty names are kept in order.
func ParseAPIResponse(body []byte, topN int) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", core.ErrNotJSONArray)
	}
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: got %s", core.ErrNotJSONArray, result.Type)
	}

	names := make([]string, 0, max(topN, 0))
	result.ForEach(func(_, record gjson.Result) bool {
		name := stringField(record, core.RecordFieldModel)
		if name == "" {
			name = stringField(record, core.RecordFieldName)
		}
		if name != "" {
			names = append(names, name)
		}
		return topN <= 0 || len(names) < topN
	})
	return names, nil
}

// stringField returns the field only when it is a JSON string.
func stringField(record gjson.Result, key string) string {
	if v := record.Get(key); v.Type == gjson.String {
		return v.Str
	}
	return ""
}
