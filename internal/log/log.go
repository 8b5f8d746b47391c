// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package log builds the slog handler used by the syncx command-line tools.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
	JSONFormat   = "json"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// CreateHandler creates a [slog.Handler] writing to w with the given level
// and format. An empty level means "info"; an empty format means "text".
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	formatter, err := getFormatter(logFormat)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
	}), nil
}

// GetLevel parses a level name.
func GetLevel(logLevel string) (log.Level, error) {
	switch strings.ToLower(logLevel) {
	case "":
		return log.InfoLevel, nil
	case "warning":
		return log.WarnLevel, nil
	}

	level, err := log.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, logLevel)
	}

	return level, nil
}

func getFormatter(logFormat string) (log.Formatter, error) {
	switch strings.ToLower(logFormat) {
	case TextFormat, "":
		return log.TextFormatter, nil
	case LogfmtFormat:
		return log.LogfmtFormatter, nil
	case JSONFormat:
		return log.JSONFormatter, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, logFormat)
	}
}
