package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmbeddedData(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantOK   bool
		wantKeys []string
	}{
		{
			name:     "next data script",
			html:     `<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{}},"page":"/leaderboard"}</script>`,
			wantOK:   true,
			wantKeys: []string{"page", "props"},
		},
		{
			name:     "whitespace before closing tag",
			html:     "<script id=\"__NEXT_DATA__\">\n{\"buildId\":\"x\"}\n  </script>",
			wantOK:   true,
			wantKeys: []string{"buildId"},
		},
		{"marker absent", `<script>{"props":{}}</script>`, false, nil},
		{"blob not json", `<script id="__NEXT_DATA__">{not: json}</script>`, false, nil},
		{"no closing tag", `<script id="__NEXT_DATA__">{"props":{}}`, false, nil},
		{"empty page", ``, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ok := ExtractEmbeddedData(tt.html)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKeys, data.TopLevelKeys)
				assert.NotEmpty(t, data.Raw)
			}
		})
	}
}

func TestExtractModelNames(t *testing.T) {
	html := `{"model_name": "Gemini 3 Pro"} junk "model_name":"GPT-5.2 Pro" more
	"model_name":   "Claude Opus 4.5" "model_name": "" "other": "x"`

	assert.Equal(t, []string{"Gemini 3 Pro", "GPT-5.2 Pro", "Claude Opus 4.5"}, ExtractModelNames(html, 30))
	assert.Equal(t, []string{"Gemini 3 Pro", "GPT-5.2 Pro"}, ExtractModelNames(html, 2))
	assert.Len(t, ExtractModelNames(html, 0), 3)
	assert.Empty(t, ExtractModelNames("<html></html>", 30))
}

func TestExtractModelNames_DocumentOrderWithDuplicates(t *testing.T) {
	html := `"model_name": "b" "model_name": "a" "model_name": "b"`

	assert.Equal(t, []string{"b", "a", "b"}, ExtractModelNames(html, 30))
}
