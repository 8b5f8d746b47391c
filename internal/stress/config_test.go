// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stress_test

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/syncx/internal/stress"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := stress.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 10000, cfg.Iterations)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, int64(1<<20), cfg.Budget)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SYNCX_STRESS_WORKERS", "3")
	t.Setenv("SYNCX_STRESS_ITERATIONS", "50")
	t.Setenv("SYNCX_STRESS_TIMEOUT", "2s")
	t.Setenv("SYNCX_STRESS_CEILING", "77")

	cfg, err := stress.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 50, cfg.Iterations)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, int64(77), cfg.Ceiling)
}

func TestLoadConfigMalformed(t *testing.T) {
	t.Setenv("SYNCX_STRESS_TIMEOUT", "soon")

	_, err := stress.LoadConfig()
	require.ErrorContains(t, err, "parse env")
}

func TestLoadConfigOutOfRange(t *testing.T) {
	t.Setenv("SYNCX_STRESS_WORKERS", "0")

	_, err := stress.LoadConfig()
	require.ErrorIs(t, err, stress.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := stress.Config{Workers: 1, Iterations: 1, Timeout: time.Second}
	require.NoError(t, valid.Validate())

	err := stress.Config{Workers: 0, Iterations: -1, Timeout: 0, Budget: -1}.Validate()
	require.ErrorIs(t, err, stress.ErrInvalidConfig)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)
}
