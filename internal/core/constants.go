package core

import "time"

// Leaderboard source constants
const (
	DefaultTopN        = 30
	DefaultArenaAPIURL = "https://arena.ai/api/v1/leaderboard"
	DefaultArenaPage   = "https://lmarena.ai/leaderboard"
	FetchTimeout       = 30 * time.Second
)

// Leaderboard record field names (primary API)
const (
	RecordFieldModel = "model"
	RecordFieldName  = "name"
)

// Fallback page extraction patterns
const (
	EmbeddedDataMarker  = "__NEXT_DATA__"
	EmbeddedDataPattern = `__NEXT_DATA__.*?(\{.*?\})\s*</script>`
	ModelNamePattern    = `"model_name":\s*"([^"]+)"`
)

// Local file defaults
const (
	DefaultMappingPath = "scripts/model_mapping.json"
	DefaultYAMLPath    = "librechat.yaml"
)

// MappingCommentPrefix marks mapping keys that are comments, not names.
const MappingCommentPrefix = "_"

// Config document field names
const (
	FieldEndpoints  = "endpoints"
	FieldCustom     = "custom"
	FieldName       = "name"
	FieldModels     = "models"
	FieldDefault    = "default"
	FieldTitleModel = "titleModel"
)

// Built-in endpoint identifiers
const (
	EndpointOpenAI    = "openAI"
	EndpointAnthropic = "anthropic"
)

// DefaultBuiltinEndpoints lists the endpoints addressed directly under `endpoints`.
var DefaultBuiltinEndpoints = []string{EndpointOpenAI, EndpointAnthropic}

// YAML output formatting
const (
	YAMLIndent = 2
)

// Process exit codes
const (
	ExitOK          = 0
	ExitFetchFailed = 1
	ExitFatal       = 1
)

// Time format constants
const (
	TimeFormatDateTime = "2006-01-02 15:04:05"
)
