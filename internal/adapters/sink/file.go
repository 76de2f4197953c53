package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/baditaflorin/go_key_terms/internal/core/domain"
)

// DefaultFileName is used when a file sink is given an empty destination.
const DefaultFileName = "sortedTerms.txt"

// File writes terms to a file named by the destination inside Dir. The
// destination must be a local path: absolute paths and paths that climb out
// of Dir are rejected with domain.ErrInvalidDestination. Existing files are
// truncated.
type File struct {
	Dir  string
	Perm os.FileMode
}

// NewFile creates a file sink rooted at dir. An empty dir is the working
// directory.
func NewFile(dir string) *File {
	return &File{Dir: dir, Perm: 0o644}
}

// ValidateDestination reports whether destination stays inside a sink's
// directory. An empty destination is valid and means DefaultFileName.
func ValidateDestination(destination string) error {
	if destination == "" || filepath.IsLocal(destination) {
		return nil
	}
	return fmt.Errorf("%w: %q", domain.ErrInvalidDestination, destination)
}

// Path resolves destination to the file that Write would create.
func (s *File) Path(destination string) (string, error) {
	if err := ValidateDestination(destination); err != nil {
		return "", err
	}
	if destination == "" {
		destination = DefaultFileName
	}
	return filepath.Join(s.Dir, destination), nil
}

// Write creates or truncates the destination file and writes one term per line.
func (s *File) Write(ctx context.Context, destination string, terms []string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}

	path, err := s.Path(destination)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := writeLines(f, terms); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
