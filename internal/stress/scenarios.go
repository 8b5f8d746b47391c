// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stress

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/syncx"
)

const maxDelta = 10

// checkEvery is how many operations a worker performs between context checks.
const checkEvery = 256

// waitTimeout caps a single wait by the scenario deadline.
func waitTimeout(ctx context.Context, cfg Config) time.Duration {
	if d, ok := ctx.Deadline(); ok {
		return max(time.Until(d), 0)
	}
	return cfg.Timeout
}

// BoundedAdd has every worker add random deltas to one cell under a
// ceiling. The final value must equal the sum of the accepted deltas and
// must not exceed the ceiling.
func BoundedAdd(ctx context.Context, cfg Config) (Report, error) {
	var (
		cell     atomix.Int64
		accepted atomix.Int64
		rejected atomix.Int64
	)
	ceiling := cfg.ceiling()

	g, ctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		r := rand.New(rand.NewPCG(cfg.Seed, uint64(w)))
		g.Go(func() error {
			for i := range cfg.Iterations {
				if i%checkEvery == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				delta := r.Int64N(maxDelta) + 1
				orig, err := syncx.BoundedAdd64(&cell, ceiling, delta)
				switch {
				case err == nil:
					if orig+delta > ceiling {
						return fmt.Errorf("%w: added %d to %d past ceiling %d", ErrInvariant, delta, orig, ceiling)
					}
					accepted.Add(delta)
				case errors.Is(err, syncx.ErrCeiling):
					if orig+delta <= ceiling {
						return fmt.Errorf("%w: rejected %d at %d under ceiling %d", ErrInvariant, delta, orig, ceiling)
					}
					rejected.Add(1)
				default:
					return err
				}
			}
			return nil
		})
	}

	report := Report{Ops: int64(cfg.Workers) * int64(cfg.Iterations)}
	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Failures = rejected.Load()

	if final, want := cell.Load(), accepted.Load(); final != want {
		return report, fmt.Errorf("%w: final value %d, accepted deltas sum to %d", ErrInvariant, final, want)
	}
	if final := cell.Load(); final > ceiling {
		return report, fmt.Errorf("%w: final value %d above ceiling %d", ErrInvariant, final, ceiling)
	}

	return report, nil
}

// Exchange increments one cell through ConditionalExchange64, retrying
// lost races with a backoff. No increment may be lost.
func Exchange(ctx context.Context, cfg Config) (Report, error) {
	var (
		cell    atomix.Int64
		changed atomix.Int64
	)

	g, ctx := errgroup.WithContext(ctx)
	for range cfg.Workers {
		g.Go(func() error {
			backoff := iox.Backoff{}
			for i := range cfg.Iterations {
				if i%checkEvery == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				for {
					cur := syncx.Load64(&cell)
					orig, err := syncx.ConditionalExchange64(&cell, cur+1, func(original, _ int64) bool {
						return original == cur
					})
					if err == nil && orig == cur {
						backoff.Reset()
						break
					}
					if err != nil {
						if !syncx.IsChanged(err) {
							return err
						}
						changed.Add(1)
					}
					backoff.Wait()
				}
			}
			return nil
		})
	}

	report := Report{Ops: int64(cfg.Workers) * int64(cfg.Iterations)}
	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Failures = changed.Load()

	if got := cell.Load(); got != report.Ops {
		return report, fmt.Errorf("%w: counter %d after %d increments", ErrInvariant, got, report.Ops)
	}

	return report, nil
}

// Handoff passes a turn token between two goroutines for cfg.Iterations
// rounds. Each side waits for its parity, then hands the turn over.
func Handoff(ctx context.Context, cfg Config) (Report, error) {
	var turn atomix.Int32
	rounds := int32(min(cfg.Iterations, 1<<30))

	g, ctx := errgroup.WithContext(ctx)
	for parity := range int32(2) {
		g.Go(func() error {
			for i := range rounds {
				want := 2*i + parity
				if err := syncx.WaitUntilEqual32(&turn, want, waitTimeout(ctx, cfg)); err != nil {
					return fmt.Errorf("round %d: %w", i, err)
				}
				if err := syncx.SetAndNotify32(&turn, want+1); err != nil {
					return err
				}
			}
			return nil
		})
	}

	report := Report{Ops: 2 * int64(rounds)}
	if err := g.Wait(); err != nil {
		return report, err
	}

	if got := syncx.Load32(&turn); got != 2*rounds {
		return report, fmt.Errorf("%w: turn %d after %d rounds", ErrInvariant, got, rounds)
	}

	return report, nil
}

// Latch counts down cfg.Workers decrements per round while the caller
// waits for zero. The waiter must never return before the last decrement.
func Latch(ctx context.Context, cfg Config) (Report, error) {
	rounds := max(cfg.Iterations/100, 1)
	report := Report{Ops: int64(rounds) * int64(cfg.Workers)}

	for round := range rounds {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		var pending, done atomix.Int32
		pending.Store(int32(cfg.Workers))

		var g errgroup.Group
		for range cfg.Workers {
			g.Go(func() error {
				done.Add(1)
				return syncx.DecrementAndNotify32(&pending)
			})
		}

		if err := syncx.WaitUntilEqual32(&pending, 0, waitTimeout(ctx, cfg)); err != nil {
			return report, settle(&g, fmt.Errorf("round %d: %w", round, err))
		}
		if n := done.Load(); n != int32(cfg.Workers) {
			return report, settle(&g, fmt.Errorf("%w: round %d released after %d of %d workers", ErrInvariant, round, n, cfg.Workers))
		}
		if err := g.Wait(); err != nil {
			return report, err
		}
	}

	return report, nil
}

// settle waits for g and joins any worker error onto cause.
func settle(g *errgroup.Group, cause error) error {
	if err := g.Wait(); err != nil {
		return multierror.Append(cause, err)
	}
	return cause
}

// Refcount shares handles between workers under a byte budget. Every
// successfully created object must be disposed exactly once and the budget
// must drain back to zero.
func Refcount(ctx context.Context, cfg Config) (Report, error) {
	type block struct {
		owner int
		seq   int
	}

	var (
		created  atomix.Int64
		disposed atomix.Int64
		refused  atomix.Int64
	)
	budget := syncx.NewBudget(cfg.Budget)
	class := syncx.NewClass[block](func(*block) { disposed.Add(1) }).WithAllocator(budget)

	// One long-lived object per worker, read concurrently by every worker.
	shared := make([]syncx.Handle[block], cfg.Workers)
	for i := range shared {
		h := class.CreateFromContent(&block{owner: -1, seq: i})
		if h.IsNil() {
			for j := range i {
				syncx.Release(&shared[j])
			}
			return Report{}, fmt.Errorf("budget of %d bytes too small for %d shared objects", cfg.Budget, len(shared))
		}
		created.Add(1)
		syncx.Initialize(&shared[i], h)
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			var alias, mine syncx.Handle[block]
			defer syncx.Release(&alias)
			defer syncx.Release(&mine)

			for i := range cfg.Iterations {
				if i%checkEvery == 0 && gctx.Err() != nil {
					return gctx.Err()
				}

				syncx.Assign(&alias, shared[(w+i)%len(shared)])
				if v := alias.Value(); v == nil || v.owner != -1 {
					return fmt.Errorf("%w: shared alias lost its payload", ErrInvariant)
				}

				h := class.CreateFlex(uintptr(i%8+1), 8)
				if h.IsNil() {
					refused.Add(1)
					continue
				}
				created.Add(1)
				h.Value().owner, h.Value().seq = w, i
				syncx.Move(&mine, &h)
			}
			return nil
		})
	}
	err := g.Wait()

	for i := range shared {
		syncx.Release(&shared[i])
	}

	report := Report{
		Ops:      int64(cfg.Workers) * int64(cfg.Iterations),
		Failures: refused.Load(),
	}
	if err != nil {
		return report, err
	}

	if c, d := created.Load(), disposed.Load(); c != d {
		return report, fmt.Errorf("%w: created %d objects, disposed %d", ErrInvariant, c, d)
	}
	if used := budget.InUse(); used != 0 {
		return report, fmt.Errorf("%w: budget holds %d bytes after teardown", ErrInvariant, used)
	}

	return report, nil
}
