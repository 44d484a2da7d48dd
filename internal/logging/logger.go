// Package logging builds the zerolog logger used by the CLI: console output on
// stderr plus an optional rotating log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
)

// Options configures New.
type Options struct {
	Verbose bool
	Quiet   bool

	// File is the rotating log file; empty disables file logging.
	File       string
	MaxSizeMB  int
	MaxBackups int

	// Console receives console output; nil means os.Stderr with TTY detection.
	Console io.Writer
}

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.TimeFieldFormat = time.RFC3339
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger writing to the console and, when configured, to a
// rotating log file. The returned closer releases the file.
//
// A log file that cannot be opened is not fatal: the logger falls back to
// console output and reports the problem as a warning.
func New(opts Options) (zerolog.Logger, io.Closer) {
	configureZerologGlobals()

	console := opts.Console
	if console == nil {
		console = selectOutput()
	}

	var closer io.Closer = nopCloser{}
	writer := console

	fileWriter, fileErr := createLogFileWriter(opts)
	if fileWriter != nil {
		closer = fileWriter
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	logger := zerolog.New(writer).Level(SelectLevel(opts.Verbose, opts.Quiet)).With().Timestamp().Logger()
	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", opts.File).Msg("log file unavailable, logging to console only")
	}
	return logger, closer
}

// SelectLevel maps the verbosity flags to a level:
//   - verbose: debug
//   - quiet: warn
//   - default: info
func SelectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput uses a console writer on a color capable terminal, JSON on
// stderr otherwise.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

func createLogFileWriter(opts Options) (io.WriteCloser, error) {
	if opts.File == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), constants.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = constants.DefaultLogMaxSizeMB
	}

	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
		Compress:   false,
	}, nil
}
