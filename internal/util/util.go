package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"arenasync/internal/core"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// MarshalJSON wraps Sonic for performance
func MarshalJSON(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// MarshalJSONIndent wraps Sonic indented output for files meant to be read by people
func MarshalJSONIndent(v any) ([]byte, error) {
	return sonic.MarshalIndent(v, "", "  ")
}

// UnmarshalJSON wraps Sonic for performance
func UnmarshalJSON(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

// GenerateRunID generates a unique run identifier
func GenerateRunID() string {
	return uuid.NewString()
}

// NewGetRequest creates an outbound GET request with standard headers
func NewGetRequest(ctx context.Context, rawURL, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if err := ValidateRequestTarget(req); err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", core.HTTPUserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return req, nil
}

// ValidateRequestTarget only lets absolute http(s) URLs through
func ValidateRequestTarget(req *http.Request) error {
	if req == nil || req.URL == nil {
		return fmt.Errorf("invalid request: missing URL")
	}
	scheme := strings.ToLower(req.URL.Scheme)
	if (scheme != "http" && scheme != "https") || req.URL.Host == "" {
		return fmt.Errorf("blocked request target: %s", req.URL.Redacted())
	}
	return nil
}

// ReadResponseBody reads a 2xx response body up to MaxResponseBodySize
func ReadResponseBody(resp *http.Response) ([]byte, error) {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, core.MaxResponseBodySize))
		return nil, fmt.Errorf("%w: %d", core.ErrUnexpectedStatus, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, core.MaxResponseBodySize))
}

// TruncateString truncates string and adds replacement text in the middle
func TruncateString(s string, prefixLen, suffixLen int, replacement string) string {
	if len(s) > prefixLen+suffixLen {
		return s[:prefixLen] + replacement + s[len(s)-suffixLen:]
	}
	return s
}

// ParseEnvList parses comma-separated env var to trimmed slice
func ParseEnvList(envVar string) []string {
	if envVar == "" {
		return nil
	}
	parts := strings.Split(envVar, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetEnvWithDefault gets env var with default value
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets a positive integer env var, falling back on missing or invalid values
func GetEnvInt(key string, defaultValue int) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue, false
	}
	return value, true
}

// GetEnvBool gets a boolean env var
func GetEnvBool(key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && value
}
