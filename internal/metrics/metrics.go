package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"arenasync/internal/core"
)

// AtomicFetchStats thread-safe fetch counters
type AtomicFetchStats struct {
	TotalRequests      atomic.Int64
	SuccessfulRequests atomic.Int64
	FailedRequests     atomic.Int64
	TotalResponseTime  atomic.Int64
}

// MetricsConfig configuration for MetricsService
type MetricsConfig struct {
	HistorySize int
	Storage     core.StorageInterface
	Logger      core.Logger
}

// MetricsService collects fetch metrics for one run and appends the run to history
type MetricsService struct {
	atomicStats    AtomicFetchStats
	records        []core.FetchRecord
	recordsMu      sync.Mutex
	maxHistorySize int
	storage        core.StorageInterface
	logger         core.Logger
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(config MetricsConfig) *MetricsService {
	historySize := config.HistorySize
	if historySize <= 0 {
		historySize = core.HistoryMaxRecord
	}
	logger := config.Logger
	if logger == nil {
		logger = &core.NopLogger{}
	}
	return &MetricsService{
		maxHistorySize: historySize,
		storage:        config.Storage,
		logger:         logger,
	}
}

// RecordFetch records one leaderboard request attempt
func (ms *MetricsService) RecordFetch(source core.FetchSource, duration time.Duration, success bool) {
	ms.atomicStats.TotalRequests.Add(1)
	ms.atomicStats.TotalResponseTime.Add(duration.Milliseconds())
	if success {
		ms.atomicStats.SuccessfulRequests.Add(1)
	} else {
		ms.atomicStats.FailedRequests.Add(1)
	}

	ms.recordsMu.Lock()
	ms.records = append(ms.records, core.FetchRecord{
		Timestamp:    time.Now(),
		Source:       source,
		Success:      success,
		ResponseTime: duration.Milliseconds(),
	})
	ms.recordsMu.Unlock()
}

// Snapshot returns the current fetch stats
func (ms *MetricsService) Snapshot() core.FetchStats {
	ms.recordsMu.Lock()
	recordsCopy := make([]core.FetchRecord, len(ms.records))
	copy(recordsCopy, ms.records)
	ms.recordsMu.Unlock()

	return core.FetchStats{
		TotalRequests:      ms.atomicStats.TotalRequests.Load(),
		SuccessfulRequests: ms.atomicStats.SuccessfulRequests.Load(),
		FailedRequests:     ms.atomicStats.FailedRequests.Load(),
		TotalResponseTime:  ms.atomicStats.TotalResponseTime.Load(),
		Records:            recordsCopy,
	}
}

// SaveRun appends a run record to the stored history, keeping the newest maxHistorySize runs
func (ms *MetricsService) SaveRun(record core.RunRecord) error {
	if ms.storage == nil {
		return nil
	}

	history, err := ms.storage.LoadHistory()
	if err != nil {
		return fmt.Errorf("failed to load run history: %w", err)
	}

	history.Runs = append(history.Runs, record)
	if len(history.Runs) > ms.maxHistorySize {
		history.Runs = history.Runs[len(history.Runs)-ms.maxHistorySize:]
	}

	if err := ms.storage.SaveHistory(history); err != nil {
		return fmt.Errorf("failed to save run history: %w", err)
	}
	ms.logger.Debug("Saved run %s (%d runs in history)", record.ID, len(history.Runs))
	return nil
}

// LastRun returns the most recent stored run, nil when the history is empty
func (ms *MetricsService) LastRun() (*core.RunRecord, error) {
	if ms.storage == nil {
		return nil, nil
	}
	history, err := ms.storage.LoadHistory()
	if err != nil {
		return nil, err
	}
	if len(history.Runs) == 0 {
		return nil, nil
	}
	last := history.Runs[len(history.Runs)-1]
	return &last, nil
}
