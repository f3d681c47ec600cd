package core

import "errors"

// Fetch errors
var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrNotJSONArray     = errors.New("response is not a JSON array")
	ErrNoModelNames     = errors.New("no model names found")
)

// Local file errors
var (
	ErrInvalidMappingEntry = errors.New("invalid mapping entry")
	ErrNotYAMLDocument     = errors.New("config is not a YAML mapping document")
)
