// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/syncx/internal/log"
)

func TestCreateHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level  string
		format string
		err    error
	}{
		"defaults":       {},
		"debug text":     {level: "debug", format: "text"},
		"warning logfmt": {level: "warning", format: "logfmt"},
		"error json":     {level: "ERROR", format: "JSON"},
		"bad level":      {level: "loud", err: log.ErrUnknownLevel},
		"bad format":     {format: "yaml", err: log.ErrUnknownFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := log.CreateHandler(&bytes.Buffer{}, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.Nil(t, h)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestHandlerLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h, err := log.CreateHandler(buf, "warn", "text")
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown", "scenario", "latch")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "latch")
}

func TestHandlerJSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h, err := log.CreateHandler(buf, "info", "json")
	require.NoError(t, err)

	slog.New(h).Info("finished", "ops", 42)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "finished", record["msg"])
	assert.InDelta(t, 42, record["ops"], 0)
}

func TestGetLevel(t *testing.T) {
	t.Parallel()

	level, err := log.GetLevel("")
	require.NoError(t, err)
	assert.Equal(t, "info", level.String())

	level, err = log.GetLevel("Debug")
	require.NoError(t, err)
	assert.Equal(t, "debug", level.String())
}
