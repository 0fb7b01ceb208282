// Package telemetry wraps zerolog into the small structured-logging
// surface the CLI harness needs: run
// start/end, row counts, and elapsed time per experiment. The simulator
// core itself never logs — it's a pure function of seed and config.
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level is the logging verbosity threshold.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects between machine-readable JSON and a human-readable
// console format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger is a structured logger scoped to one run, with fields attached
// via With.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	var w io.Writer = out
	if cfg.Format == FormatText {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: false}
	}

	z := zerolog.New(w).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		z = z.Level(zerolog.DebugLevel)
	case LevelWarn:
		z = z.Level(zerolog.WarnLevel)
	case LevelError:
		z = z.Level(zerolog.ErrorLevel)
	default:
		z = z.Level(zerolog.InfoLevel)
	}
	return &Logger{z: z}
}

// With returns a child Logger carrying an additional string field,
// e.g. the run ID or experiment name, on every subsequent log line.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{z: l.z.With().Str(key, value).Logger()}
}

func (l *Logger) Debug(msg string) { l.z.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.z.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.z.Warn().Msg(msg) }
func (l *Logger) Error(msg string, err error) {
	l.z.Error().Err(err).Msg(msg)
}

// RunStart logs the start of one experiment run.
func (l *Logger) RunStart(experiment string) {
	l.z.Info().Str("experiment", experiment).Msg("run started")
}

// RunDone logs the completion of one experiment run with its row count
// and elapsed wall-clock duration.
func (l *Logger) RunDone(experiment string, rows int, elapsed time.Duration) {
	l.z.Info().
		Str("experiment", experiment).
		Int("rows", rows).
		Dur("elapsed", elapsed).
		Msg("run completed")
}
