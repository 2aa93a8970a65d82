// Package log provides prefixed, colored, leveled loggers on top of zerolog.
package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/beka-birhanu/backtracking-maze/service/i"
	"github.com/rs/zerolog"
)

const colorReset = "\033[0m"

var (
	ErrEmptyPrefix = errors.New("logger prefix must not be empty")
	ErrNilWriter   = errors.New("logger writer must not be nil")
)

var _ i.Logger = &Logger{}

// Logger writes messages tagged with a colored component prefix.
type Logger struct {
	zl zerolog.Logger
}

// New creates a Logger writing to w with every line tagged "[prefix]" in the given ANSI color.
// An empty color disables coloring of the prefix.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	tag := "[" + prefix + "]"
	if color != "" {
		tag = color + tag + colorReset
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    color == "",
		TimeFormat: time.RFC3339,
		FormatMessage: func(m interface{}) string {
			if m == nil {
				return tag
			}
			return tag + " " + fmt.Sprint(m)
		},
	}

	return &Logger{zl: zerolog.New(out).With().Timestamp().Logger()}, nil
}

// SetLevel sets the minimum level of every logger, e.g. "debug" or "warn".
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Warning(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.zl.Error().Msg(msg)
}
