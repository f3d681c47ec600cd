package config

import (
	"net/http"
	"time"

	"arenasync/internal/core"
	"arenasync/internal/util"
)

// Config run configuration, passed explicitly to every component
type Config struct {
	TopN               int
	ArenaAPIURL        string
	PageURL            string
	MappingPath        string
	YAMLPath           string
	BuiltinEndpoints   []string
	FetchTimeout       time.Duration
	DryRun             bool
	HistoryPath        string
	RedisURL           string
	HTTPClientSettings HTTPClientSettings
}

// HTTPClientSettings HTTP client configuration
type HTTPClientSettings struct {
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration
	RequestTimeout      time.Duration
}

// DefaultHTTPClientSettings default HTTP client settings
func DefaultHTTPClientSettings() HTTPClientSettings {
	return HTTPClientSettings{
		MaxIdleConns:        core.HTTPMaxIdleConns,
		MaxIdleConnsPerHost: core.HTTPMaxIdleConnsPerHost,
		MaxConnsPerHost:     core.HTTPMaxConnsPerHost,
		IdleConnTimeout:     core.HTTPIdleConnTimeout,
		TLSHandshakeTimeout: core.HTTPTLSHandshakeTimeout,
		RequestTimeout:      core.HTTPRequestTimeout,
	}
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		TopN:               core.DefaultTopN,
		ArenaAPIURL:        core.DefaultArenaAPIURL,
		PageURL:            core.DefaultArenaPage,
		MappingPath:        core.DefaultMappingPath,
		YAMLPath:           core.DefaultYAMLPath,
		BuiltinEndpoints:   append([]string(nil), core.DefaultBuiltinEndpoints...),
		FetchTimeout:       core.FetchTimeout,
		HTTPClientSettings: DefaultHTTPClientSettings(),
	}
}

// LoadConfigFromEnv loads run config from environment variables on top of DefaultConfig
func LoadConfigFromEnv(logger core.Logger) Config {
	cfg := DefaultConfig()

	topN, ok := util.GetEnvInt("TOP_N", core.DefaultTopN)
	if !ok {
		logger.Warn("Invalid TOP_N value, using default %d", core.DefaultTopN)
	}
	cfg.TopN = topN

	cfg.ArenaAPIURL = util.GetEnvWithDefault("ARENA_API_URL", cfg.ArenaAPIURL)
	cfg.PageURL = util.GetEnvWithDefault("ARENA_PAGE_URL", cfg.PageURL)
	cfg.MappingPath = util.GetEnvWithDefault("MODEL_MAPPING_FILE", cfg.MappingPath)
	cfg.YAMLPath = util.GetEnvWithDefault("LIBRECHAT_YAML", cfg.YAMLPath)
	cfg.HistoryPath = util.GetEnvWithDefault("ARENASYNC_HISTORY_FILE", cfg.HistoryPath)
	cfg.RedisURL = util.GetEnvWithDefault("REDIS_URL", "")
	cfg.DryRun = util.GetEnvBool("ARENASYNC_DRY_RUN")

	if builtins := util.ParseEnvList(util.GetEnvWithDefault("BUILTIN_ENDPOINTS", "")); len(builtins) > 0 {
		cfg.BuiltinEndpoints = builtins
	}

	logger.Debug("Config: top_n=%d api=%s page=%s mapping=%s yaml=%s builtins=%v dry_run=%v",
		cfg.TopN, cfg.ArenaAPIURL, cfg.PageURL, cfg.MappingPath, cfg.YAMLPath, cfg.BuiltinEndpoints, cfg.DryRun)

	return cfg
}

// NewHTTPClient creates the outbound client shared by both leaderboard sources
func NewHTTPClient(settings HTTPClientSettings) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          settings.MaxIdleConns,
		MaxIdleConnsPerHost:   settings.MaxIdleConnsPerHost,
		MaxConnsPerHost:       settings.MaxConnsPerHost,
		IdleConnTimeout:       settings.IdleConnTimeout,
		TLSHandshakeTimeout:   settings.TLSHandshakeTimeout,
		ExpectContinueTimeout: core.HTTPExpectContinueTimeout,
		ResponseHeaderTimeout: core.HTTPResponseHeaderTimeout,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   settings.RequestTimeout,
	}
}
