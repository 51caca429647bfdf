package logging

import (
	"github.com/sirupsen/logrus"
)

// Logger represents a logger instance
type Logger = *logrus.Logger

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a JSON logger at the given level, defaulting to info when the level is unknown
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

// NewServiceLogger returns an entry that stamps every message with the service name
func NewServiceLogger(serviceName, level string) *logrus.Entry {
	return NewLogger(level).WithField("service", serviceName)
}
