// Package process runs the leaderboard to config pipeline once and reports the outcome.
package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"arenasync/internal/config"
	"arenasync/internal/core"
	"arenasync/internal/mapping"
	"arenasync/internal/metrics"
	"arenasync/internal/updater"
	"arenasync/internal/util"
)

// LeaderboardFetcher produces the ranked model names
type LeaderboardFetcher interface {
	Fetch(ctx context.Context) core.FetchResult
}

// RunnerConfig dependencies for Runner
type RunnerConfig struct {
	Config  config.Config
	Fetcher LeaderboardFetcher
	Updater *updater.Updater
	Metrics *metrics.MetricsService
	Logger  core.Logger
	Output  io.Writer
}

// Runner executes one fetch, resolve and update pass
type Runner struct {
	cfg     config.Config
	fetcher LeaderboardFetcher
	updater *updater.Updater
	metrics *metrics.MetricsService
	logger  core.Logger
	out     io.Writer
}

// NewRunner creates a new Runner
func NewRunner(rc RunnerConfig) *Runner {
	r := &Runner{
		cfg:     rc.Config,
		fetcher: rc.Fetcher,
		updater: rc.Updater,
		metrics: rc.Metrics,
		logger:  rc.Logger,
		out:     rc.Output,
	}
	if r.logger == nil {
		r.logger = &core.NopLogger{}
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.updater == nil {
		r.updater = updater.NewUpdater(r.cfg.BuiltinEndpoints, r.logger)
	}
	if r.metrics == nil {
		r.metrics = metrics.NewMetricsService(metrics.MetricsConfig{Logger: r.logger})
	}
	return r
}

// Run executes the pipeline and returns the process exit code
func (r *Runner) Run(ctx context.Context) int {
	record := core.RunRecord{
		ID:        util.GenerateRunID(),
		Timestamp: time.Now(),
		DryRun:    r.cfg.DryRun,
	}
	defer r.saveRun(&record)

	if last, err := r.metrics.LastRun(); err != nil {
		r.logger.Warn("Failed to read run history: %v", err)
	} else if last != nil {
		r.logger.Debug("Previous run %s at %s: source=%s matched=%d changed=%v",
			last.ID, last.Timestamp.Format(core.TimeFormatDateTime), last.Source, last.Matched, last.Changed)
	}

	r.printf("Fetching top %d models from the leaderboard...\n", r.cfg.TopN)
	result := r.fetcher.Fetch(ctx)
	record.Source = result.Source
	record.Fetched = len(result.Names)

	if result.Empty() {
		r.printf("[ERROR] Could not fetch leaderboard data, skipping update\n")
		return core.ExitFetchFailed
	}

	r.printf("Fetched %d models (source: %s):\n", len(result.Names), result.Source)
	for i, name := range result.Names {
		r.printf("  %d. %s\n", i+1, name)
	}

	table, err := mapping.LoadMapping(r.cfg.MappingPath)
	if err != nil {
		r.logger.Error("Failed to load model mapping: %v", err)
		r.printf("[ERROR] %v\n", err)
		return core.ExitFatal
	}

	group, matched := mapping.Resolve(table, result.Names)
	record.Matched = matched
	record.Providers = group.Providers()
	record.Groups = group.ToMap()
	r.logger.Debug("Resolved %d model ids across %d providers", group.Total(), len(record.Providers))

	r.printf("\nMatched %d models with a mapping:\n", matched)
	for _, provider := range group.Providers() {
		r.printf("  %s: [%s]\n", provider, strings.Join(group.Models(provider), ", "))
	}

	if matched == 0 {
		r.printf("[WARN] No models matched, %s may need updating\n", r.cfg.MappingPath)
		return core.ExitOK
	}

	if r.cfg.DryRun {
		plan, err := r.updater.Plan(r.cfg.YAMLPath, group)
		if err != nil {
			r.logger.Error("Failed to plan config update: %v", err)
			r.printf("[ERROR] %v\n", err)
			return core.ExitFatal
		}
		record.Changes = plan.Changes
		r.printf("\n[DRY RUN] %d changes would be written to %s\n", len(plan.Changes), r.cfg.YAMLPath)
		r.printChanges(plan.Changes)
		return core.ExitOK
	}

	update, err := r.updater.Update(r.cfg.YAMLPath, group)
	if err != nil {
		r.logger.Error("Failed to update config: %v", err)
		r.printf("[ERROR] %v\n", err)
		return core.ExitFatal
	}
	record.Changed = update.Changed
	record.Changes = update.Changes

	if !update.Changed {
		r.printf("\nModel lists unchanged, nothing to update.\n")
		return core.ExitOK
	}

	r.printf("\n%s updated!\n", r.cfg.YAMLPath)
	r.printChanges(update.Changes)
	return core.ExitOK
}

func (r *Runner) printChanges(changes []core.Change) {
	for _, c := range changes {
		r.printf("  %s %s: [%s] -> [%s]\n", c.Endpoint, c.Field, c.Old, c.New)
	}
}

func (r *Runner) saveRun(record *core.RunRecord) {
	record.Fetch = r.metrics.Snapshot()
	if err := r.metrics.SaveRun(*record); err != nil {
		r.logger.Warn("Failed to save run %s: %v", record.ID, err)
	}
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
