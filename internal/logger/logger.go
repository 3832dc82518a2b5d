// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to w. An unknown level falls back to info
// with a warning; format is "json" or anything else for text.
func New(level, format string, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
