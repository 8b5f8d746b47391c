// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"code.hybscloud.com/syncx/internal/cli"
)

const (
	cmdName = "syncx-stress"

	shortDesc = "Soak tests for the syncx primitives."
	longDesc  = `syncx-stress runs concurrent workloads against the syncx wait/wake,
combinator and handle APIs and verifies their invariants after each run.

Scenario defaults are read from SYNCX_STRESS_* environment variables and can
be overridden with flags.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
