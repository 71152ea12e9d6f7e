// Package logging wraps zerolog behind a small structured-logging
// interface, adapted from the teacher's pkg/reporting/logger.go.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured logging surface. The engine packages depend on
// it structurally (internal/attack.Logger, internal/hellman.Logger) rather
// than by importing this package; only cmd/attackbench imports it
// directly.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
}

// Format selects the wire shape of emitted log lines.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config controls how a Logger renders and where it writes.
type Config struct {
	Level  string // debug, info, warn, error, disabled
	Format Format
	Output io.Writer // defaults to os.Stderr
}

// DefaultConfig returns the ambient logging defaults: info level, text
// console output to stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: FormatText, Output: os.Stderr}
}

type zlogger struct {
	log zerolog.Logger
}

// New builds a Logger from cfg. An unrecognised Level falls back to info
// rather than failing construction — logging configuration should never
// be the reason a benchmark run refuses to start.
func New(cfg Config) Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var writer io.Writer = output
	if cfg.Format == FormatText {
		writer = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	base := zerolog.New(writer).With().Timestamp().Logger().Level(level)
	return &zlogger{log: base}
}

// addFields appends key/value pairs to evt, matching the teacher's
// odd-field-count guard: a trailing key with no value is logged as-is
// under "field_error" rather than panicking or silently dropping it.
func addFields(evt *zerolog.Event, fields []interface{}) *zerolog.Event {
	if len(fields)%2 != 0 {
		evt = evt.Str("field_error", fmt.Sprintf("odd number of fields: %v", fields))
		return evt
	}
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", fields[i])
		}
		evt = evt.Interface(key, fields[i+1])
	}
	return evt
}

func (l *zlogger) Debug(msg string, fields ...interface{}) {
	addFields(l.log.Debug(), fields).Msg(msg)
}

func (l *zlogger) Info(msg string, fields ...interface{}) {
	addFields(l.log.Info(), fields).Msg(msg)
}

func (l *zlogger) Warn(msg string, fields ...interface{}) {
	addFields(l.log.Warn(), fields).Msg(msg)
}

func (l *zlogger) Error(msg string, fields ...interface{}) {
	addFields(l.log.Error(), fields).Msg(msg)
}

func (l *zlogger) Fatal(msg string, fields ...interface{}) {
	addFields(l.log.Fatal(), fields).Msg(msg)
}
