package core

import "time"

// Logger interface
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Fatal(format string, args ...any)
}

// StorageInterface persists the run history
type StorageInterface interface {
	SaveHistory(history *RunHistory) error
	LoadHistory() (*RunHistory, error)
	Close() error
}

// MetricsCollector records leaderboard fetch attempts
type MetricsCollector interface {
	RecordFetch(source FetchSource, duration time.Duration, success bool)
	Snapshot() FetchStats
}

// NopLogger empty logger implementation
type NopLogger struct{}

func (*NopLogger) Debug(format string, args ...any) {}
func (*NopLogger) Info(format string, args ...any)  {}
func (*NopLogger) Warn(format string, args ...any)  {}
func (*NopLogger) Error(format string, args ...any) {}
func (*NopLogger) Fatal(format string, args ...any) {}

// NopMetrics empty metrics collector implementation
type NopMetrics struct{}

func (*NopMetrics) RecordFetch(source FetchSource, duration time.Duration, success bool) {}
func (*NopMetrics) Snapshot() FetchStats                                               { return FetchStats{} }
