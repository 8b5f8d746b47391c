// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the syncx-stress command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"code.hybscloud.com/syncx/internal/log"
	"code.hybscloud.com/syncx/internal/stress"
)

// runOptions is shared by the root command and its subcommands. Flags
// write cfg; the persistent pre-run sets logger.
type runOptions struct {
	cfg    stress.Config
	logger *slog.Logger
}

// NewRootCmd creates the root command. Scenario flag defaults come from
// the SYNCX_STRESS_* environment variables.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cfg, envErr := stress.LoadConfig()
	opts := &runOptions{cfg: cfg, logger: slog.Default()}

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, logfmt, json)")

	pf := cmd.PersistentFlags()
	pf.IntVarP(&opts.cfg.Workers, "workers", "w", opts.cfg.Workers, "Concurrent goroutines per scenario")
	pf.IntVarP(&opts.cfg.Iterations, "iterations", "n", opts.cfg.Iterations, "Operations per worker")
	pf.DurationVar(&opts.cfg.Timeout, "timeout", opts.cfg.Timeout, "Deadline per scenario")
	pf.Int64Var(&opts.cfg.Ceiling, "ceiling", opts.cfg.Ceiling, "Ceiling for bounded-add (0 derives one)")
	pf.Int64Var(&opts.cfg.Budget, "budget", opts.cfg.Budget, "Byte budget for refcount")
	pf.Uint64Var(&opts.cfg.Seed, "seed", opts.cfg.Seed, "Seed for random deltas")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		if envErr != nil {
			merr = multierror.Append(merr, envErr)
		}

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("invalid argument: %w", merr)
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		opts.logger = slog.New(h)

		if err := opts.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid argument: %w", err)
		}

		return nil
	}

	for _, scenario := range stress.Names() {
		cmd.AddCommand(newScenarioCmd(scenario, opts))
	}
	cmd.AddCommand(newAllCmd(opts))
	cmd.AddCommand(newListCmd())

	return cmd
}
