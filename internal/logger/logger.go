// Package logger holds the project-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	project = newProjectLogger()
)

func newProjectLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// GetProjectLogger returns the shared logger. Until Configure is called it
// discards everything, so packages can log freely from tests.
func GetProjectLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return project
}

// Configure points the project logger at path and sets its level. The terminal
// belongs to the TUI while it runs, so play logs to a file. An empty path means stderr.
func Configure(level, path string) (io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	mu.Lock()
	defer mu.Unlock()

	project.SetLevel(lvl)
	if path == "" {
		project.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	project.SetOutput(f)
	return f, nil
}
