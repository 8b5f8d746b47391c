// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stress runs soak scenarios against the syncx primitives and
// checks their invariants after every run.
package stress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrInvariant is wrapped by every scenario failure that indicates a
	// broken synchronization guarantee.
	ErrInvariant = errors.New("invariant violated")

	ErrUnknownScenario = errors.New("unknown scenario")
)

// Report summarizes one scenario run.
type Report struct {
	Name     string
	Ops      int64         // Operations attempted
	Failures int64         // Operations rejected by design (ceiling, budget)
	Elapsed  time.Duration // Wall time
}

// Rate returns operations per second.
func (r Report) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// Scenario runs one workload and verifies its invariants.
type Scenario func(ctx context.Context, cfg Config) (Report, error)

var scenarios = map[string]Scenario{
	"bounded-add": BoundedAdd,
	"exchange":    Exchange,
	"handoff":     Handoff,
	"latch":       Latch,
	"refcount":    Refcount,
}

// Names returns the registered scenario names in sorted order.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Run executes the named scenario under cfg.Timeout and logs its report.
func Run(ctx context.Context, logger *slog.Logger, name string, cfg Config) (Report, error) {
	scenario, ok := scenarios[name]
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}

	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	logger.Debug("scenario starting",
		slog.String("scenario", name),
		slog.Int("workers", cfg.Workers),
		slog.Int("iterations", cfg.Iterations),
	)

	start := time.Now()
	report, err := scenario(ctx, cfg)
	report.Name = name
	report.Elapsed = time.Since(start)

	if err != nil {
		logger.Error("scenario failed", slog.String("scenario", name), slog.Any("err", err))
		return report, fmt.Errorf("%s: %w", name, err)
	}

	logger.Info("scenario finished",
		slog.String("scenario", name),
		slog.Int64("ops", report.Ops),
		slog.Int64("failures", report.Failures),
		slog.Duration("elapsed", report.Elapsed),
		slog.Float64("ops_per_sec", report.Rate()),
	)

	return report, nil
}

// RunAll executes every scenario in name order. It keeps going after a
// failure and returns the failures aggregated.
func RunAll(ctx context.Context, logger *slog.Logger, cfg Config) ([]Report, error) {
	var (
		reports []Report
		merr    error
	)

	for _, name := range Names() {
		report, err := Run(ctx, logger, name, cfg)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
		reports = append(reports, report)
	}

	return reports, merr
}
