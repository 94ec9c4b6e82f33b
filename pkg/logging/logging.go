// Package logging provides the shared logger configuration.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/kynrd/threadloom/pkg/config"
)

// Fields aliases logrus.Fields for callers.
type Fields = logrus.Fields

// NewLogger creates a configured JSON logger with the level taken from the
// environment.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(nopWriter{})
	return logger
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
