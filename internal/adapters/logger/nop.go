package logger

import "github.com/baditaflorin/go_key_terms/internal/ports"

type nopLogger struct{}

// NewNopLogger returns a logger that drops everything.
func NewNopLogger() ports.Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
