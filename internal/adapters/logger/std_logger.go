package logger

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/go_key_terms/internal/ports"
	"github.com/baditaflorin/l"
)

// Options selects where and how log lines are written.
type Options struct {
	// Output defaults to os.Stdout.
	Output io.Writer
	// FilePath, when set, appends log lines to that file instead of Output.
	FilePath string
	JSON     bool
}

// StdLogger adapts l.Logger to ports.Logger.
type StdLogger struct {
	logger l.Logger
	file   *os.File
}

// NewStdLogger creates a text logger on stdout.
func NewStdLogger() (*StdLogger, error) {
	return New(Options{})
}

// New creates a logger from the given options.
func New(opts Options) (*StdLogger, error) {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	var file *os.File
	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		output = f
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  opts.JSON,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &StdLogger{logger: logger, file: file}, nil
}

// FromExisting wraps an already configured l.Logger.
func FromExisting(logger l.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes the logger. l closes its output when it is an io.Closer, so
// an already closed log file is not an error.
func (s *StdLogger) Close() error {
	err := s.logger.Close()
	if s.file != nil {
		if cerr := s.file.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
			err = cerr
		}
	}
	return err
}

var _ ports.Logger = (*StdLogger)(nil)
