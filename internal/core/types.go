package core

import "time"

// FetchSource identifies which leaderboard source produced the names.
type FetchSource string

const (
	SourceNone FetchSource = "none"
	SourceAPI  FetchSource = "api"
	SourcePage FetchSource = "page"
)

// FetchResult is the ranked list of model display names, best first.
type FetchResult struct {
	Names  []string
	Source FetchSource
}

// Empty reports whether no source produced any names.
func (r FetchResult) Empty() bool {
	return len(r.Names) == 0
}

// MappingEntry maps one leaderboard display name to a provider model id.
type MappingEntry struct {
	Provider string `json:"provider"`
	ModelID  string `json:"model_id"`
}

// Mapping is keyed by exact leaderboard display name.
type Mapping map[string]MappingEntry

// ProviderModelGroup holds model ids per provider in rank order.
// Providers keep the order in which they were first seen.
type ProviderModelGroup struct {
	providers []string
	models    map[string][]string
}

// NewProviderModelGroup creates an empty group
func NewProviderModelGroup() *ProviderModelGroup {
	return &ProviderModelGroup{models: make(map[string][]string)}
}

// NewProviderModelGroupFrom builds a group from an existing provider map.
// Providers are ordered by the given order slice, unknown keys are appended.
func NewProviderModelGroupFrom(order []string, models map[string][]string) *ProviderModelGroup {
	g := NewProviderModelGroup()
	for _, provider := range order {
		for _, id := range models[provider] {
			g.Add(provider, id)
		}
	}
	for provider, ids := range models {
		if _, seen := g.models[provider]; seen {
			continue
		}
		for _, id := range ids {
			g.Add(provider, id)
		}
	}
	return g
}

// Add appends a model id to the provider's list
func (g *ProviderModelGroup) Add(provider, modelID string) {
	if _, ok := g.models[provider]; !ok {
		g.providers = append(g.providers, provider)
	}
	g.models[provider] = append(g.models[provider], modelID)
}

// Models returns the ordered ids for a provider, nil when absent
func (g *ProviderModelGroup) Models(provider string) []string {
	if g == nil {
		return nil
	}
	return g.models[provider]
}

// Providers returns provider names in first-seen order
func (g *ProviderModelGroup) Providers() []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.providers))
	copy(out, g.providers)
	return out
}

// Total returns the number of model ids across all providers
func (g *ProviderModelGroup) Total() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, ids := range g.models {
		total += len(ids)
	}
	return total
}

// ToMap returns a copy of the provider to ids map
func (g *ProviderModelGroup) ToMap() map[string][]string {
	if g == nil {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(g.models))
	for provider, ids := range g.models {
		out[provider] = append([]string(nil), ids...)
	}
	return out
}

// Change describes one rewritten leaf of the config document.
type Change struct {
	Endpoint string `json:"endpoint"`
	Field    string `json:"field"`
	Old      string `json:"old"`
	New      string `json:"new"`
}

// FetchRecord is a single leaderboard request attempt.
type FetchRecord struct {
	Timestamp    time.Time   `json:"timestamp"`
	Source       FetchSource `json:"source"`
	Success      bool        `json:"success"`
	ResponseTime int64       `json:"response_time"`
}

// FetchStats summarizes the fetch attempts of one run.
type FetchStats struct {
	TotalRequests      int64         `json:"total_requests"`
	SuccessfulRequests int64         `json:"successful_requests"`
	FailedRequests     int64         `json:"failed_requests"`
	TotalResponseTime  int64         `json:"total_response_time"`
	Records            []FetchRecord `json:"records"`
}

// RunRecord is the persisted summary of one run.
type RunRecord struct {
	ID        string              `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Source    FetchSource         `json:"source"`
	Fetched   int                 `json:"fetched"`
	Matched   int                 `json:"matched"`
	Providers []string            `json:"providers"`
	Groups    map[string][]string `json:"groups"`
	Changed   bool                `json:"changed"`
	DryRun    bool                `json:"dry_run"`
	Changes   []Change            `json:"changes"`
	Fetch     FetchStats          `json:"fetch"`
}

// RunHistory is the list of persisted runs, oldest first.
type RunHistory struct {
	Runs []RunRecord `json:"runs"`
}
