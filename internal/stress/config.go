// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stress

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid stress config")

// Config sizes a stress run.
type Config struct {
	// Workers is the number of concurrent goroutines per scenario.
	Workers int `env:"SYNCX_STRESS_WORKERS" envDefault:"8"`
	// Iterations is the number of operations each worker performs.
	Iterations int `env:"SYNCX_STRESS_ITERATIONS" envDefault:"10000"`
	// Timeout bounds each scenario and each individual wait.
	Timeout time.Duration `env:"SYNCX_STRESS_TIMEOUT" envDefault:"30s"`
	// Ceiling for the bounded-add scenario. Zero derives one that
	// rejects roughly half of the requested additions.
	Ceiling int64 `env:"SYNCX_STRESS_CEILING" envDefault:"0"`
	// Budget is the byte limit for the refcount scenario.
	Budget int64 `env:"SYNCX_STRESS_BUDGET" envDefault:"1048576"`
	// Seed for the per-worker delta generators.
	Seed uint64 `env:"SYNCX_STRESS_SEED" envDefault:"1"`
}

// LoadConfig reads a Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var merr error

	if c.Workers < 1 {
		merr = multierror.Append(merr, fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Workers))
	}
	if c.Iterations < 1 {
		merr = multierror.Append(merr, fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalidConfig, c.Iterations))
	}
	if c.Timeout <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("%w: timeout must be > 0, got %s", ErrInvalidConfig, c.Timeout))
	}
	if c.Ceiling < 0 {
		merr = multierror.Append(merr, fmt.Errorf("%w: ceiling must be >= 0, got %d", ErrInvalidConfig, c.Ceiling))
	}
	if c.Budget < 0 {
		merr = multierror.Append(merr, fmt.Errorf("%w: budget must be >= 0, got %d", ErrInvalidConfig, c.Budget))
	}

	return merr
}

func (c Config) ceiling() int64 {
	if c.Ceiling > 0 {
		return c.Ceiling
	}
	// Deltas are uniform in [1, maxDelta]; half the expected total.
	return int64(c.Workers) * int64(c.Iterations) * (maxDelta + 1) / 4
}
