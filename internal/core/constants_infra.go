package core

import "time"

// HTTP client config constants
const (
	HTTPMaxIdleConns          = 4
	HTTPMaxIdleConnsPerHost   = 2
	HTTPMaxConnsPerHost       = 2
	HTTPIdleConnTimeout       = 90 * time.Second
	HTTPTLSHandshakeTimeout   = 10 * time.Second
	HTTPResponseHeaderTimeout = 30 * time.Second
	HTTPExpectContinueTimeout = 5 * time.Second
	HTTPRequestTimeout        = FetchTimeout
	HTTPUserAgent             = "arenasync/1.0"
)

// Response body size limits
const (
	MaxResponseBodySize = 10 * 1024 * 1024
)

// Run history constants
const (
	HistoryRedisKey  = "arenasync:history"
	HistoryMaxRecord = 100
)

// Logging config constants
const (
	MaxDebugFilePathLength = 260
)

// File permission constants
const (
	FilePermissionReadWrite = 0644
)
