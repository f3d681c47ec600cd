// Package mapping loads the leaderboard name to provider model table and
// groups ranked names by provider.
package mapping

import (
	"fmt"
	"os"
	"strings"

	"arenasync/internal/core"
	"arenasync/internal/util"
)

// LoadMapping loads the mapping table, skipping comment keys
func LoadMapping(path string) (core.Mapping, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path from config, not user input
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]any
	if err := util.UnmarshalJSON(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	mapping := make(core.Mapping, len(raw))
	for name, value := range raw {
		if strings.HasPrefix(name, core.MappingCommentPrefix) {
			continue
		}
		entry, err := parseEntry(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", path, name, err)
		}
		mapping[name] = entry
	}

	return mapping, nil
}

func parseEntry(value any) (core.MappingEntry, error) {
	fields, ok := value.(map[string]any)
	if !ok {
		return core.MappingEntry{}, fmt.Errorf("%w: expected object", core.ErrInvalidMappingEntry)
	}
	provider, _ := fields["provider"].(string)
	modelID, _ := fields["model_id"].(string)
	if provider == "" || modelID == "" {
		return core.MappingEntry{}, fmt.Errorf("%w: provider and model_id must be non-empty strings", core.ErrInvalidMappingEntry)
	}
	return core.MappingEntry{Provider: provider, ModelID: modelID}, nil
}

// Resolve groups the ids of mapped names by provider, keeping rank order.
// Unmapped names are skipped.
func Resolve(mapping core.Mapping, names []string) (*core.ProviderModelGroup, int) {
	group := core.NewProviderModelGroup()
	matched := 0
	for _, name := range names {
		entry, ok := mapping[name]
		if !ok {
			continue
		}
		group.Add(entry.Provider, entry.ModelID)
		matched++
	}
	return group, matched
}
