package leaderboard

import (
	"regexp"
	"sort"
	"strings"

	"arenasync/internal/core"
	"arenasync/internal/util"
)

var (
	embeddedDataRe = regexp.MustCompile(`(?s)` + core.EmbeddedDataPattern)
	modelNameRe    = regexp.MustCompile(core.ModelNamePattern)
)

// EmbeddedData is the JSON blob found behind the page's data marker.
// Its layout changes with every frontend release, so it is only used for diagnostics.
type EmbeddedData struct {
	Raw          string
	TopLevelKeys []string
}

// ExtractEmbeddedData is best effort: ok is false when the marker is absent
// or the blob is not a JSON object.
func ExtractEmbeddedData(html string) (EmbeddedData, bool) {
	if !strings.Contains(html, core.EmbeddedDataMarker) {
		return EmbeddedData{}, false
	}
	match := embeddedDataRe.FindStringSubmatch(html)
	if len(match) < 2 {
		return EmbeddedData{}, false
	}

	var blob map[string]any
	if err := util.UnmarshalJSON([]byte(match[1]), &blob); err != nil || blob == nil {
		return EmbeddedData{}, false
	}

	keys := make([]string, 0, len(blob))
	for key := range blob {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return EmbeddedData{Raw: match[1], TopLevelKeys: keys}, true
}

// ExtractModelNames returns the first limit "model_name" values in document order.
// A limit <= 0 returns every match.
func ExtractModelNames(html string, limit int) []string {
	n := -1
	if limit > 0 {
		n = limit
	}
	matches := modelNameRe.FindAllStringSubmatch(html, n)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
