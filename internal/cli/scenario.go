// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"code.hybscloud.com/syncx/internal/stress"
)

var scenarioDescs = map[string]string{
	"bounded-add": "Concurrent BoundedAdd64 against a ceiling",
	"exchange":    "Counter built on ConditionalExchange64 with backoff retry",
	"handoff":     "Two-goroutine ping-pong on WaitUntilEqual32/SetAndNotify32",
	"latch":       "Countdown with DecrementAndNotify32 and a zero waiter",
	"refcount":    "Shared handles under a byte budget",
}

func newScenarioCmd(name string, opts *runOptions) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: scenarioDescs[name],
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			report, err := stress.Run(cc.Context(), opts.logger, name, opts.cfg)
			if err != nil {
				return err
			}

			return writeReports(cc.OutOrStdout(), report)
		},
	}
}

func newAllCmd(opts *runOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every scenario",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			reports, err := stress.RunAll(cc.Context(), opts.logger, opts.cfg)
			if werr := writeReports(cc.OutOrStdout(), reports...); werr != nil {
				return werr
			}

			return err
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			for _, name := range stress.Names() {
				if _, err := fmt.Fprintf(cc.OutOrStdout(), "%-12s %s\n", name, scenarioDescs[name]); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func writeReports(w io.Writer, reports ...stress.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tOPS\tFAILURES\tELAPSED\tOPS/S")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%.0f\n", r.Name, r.Ops, r.Failures, r.Elapsed.Round(time.Microsecond), r.Rate())
	}

	return tw.Flush()
}
