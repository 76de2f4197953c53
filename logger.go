// logger.go
// Package keyterms provides shared utilities for the go_key_terms package.
package keyterms

import (
	adapterlogger "github.com/baditaflorin/go_key_terms/internal/adapters/logger"
)

// createDefaultLogger creates and returns a default logger instance.
func createDefaultLogger() (*adapterlogger.StdLogger, error) {
	return adapterlogger.New(adapterlogger.Options{})
}
