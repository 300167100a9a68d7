// Package logging sets up the file logger. The TUI owns the terminal, so
// nothing is ever logged to stdout or stderr while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options configures Setup.
type Options struct {
	// Level is a logrus level name. Unknown names fall back to info.
	Level string

	// File is the log file path. Empty means $XDG_STATE_HOME/scrub/scrub.log.
	File string

	// JSON selects the JSON formatter instead of text.
	JSON bool
}

// Setup opens the log file in append mode and returns an entry tagged with a
// fresh session ID. The closer releases the file.
func Setup(opts Options) (*logrus.Entry, io.Closer, error) {
	path, err := logPath(opts.File)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)
	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, levelErr := logrus.ParseLevel(opts.Level)
	if levelErr != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	entry := l.WithField("session", uuid.NewString())
	if levelErr != nil && opts.Level != "" {
		entry.WithError(levelErr).Warn("unknown log level, using info")
	}
	return entry, f, nil
}

// Discard returns an entry that drops everything.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func logPath(custom string) (string, error) {
	if custom == "" {
		path, err := xdg.StateFile(filepath.Join("scrub", "scrub.log"))
		if err != nil {
			return "", fmt.Errorf("resolve log path: %w", err)
		}
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(custom), 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	return custom, nil
}
