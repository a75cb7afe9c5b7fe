package fileio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrCommitted is returned by Write after Commit.
var ErrCommitted = errors.New("output already committed")

// Output is a destination stream that becomes visible only on Commit.
type Output struct {
	path      string
	tmp       *os.File
	w         io.Writer
	finish    func() error
	committed bool
	closed    bool
}

// CreateOutput prepares path for writing. The caller must call Commit on
// success and Close in every case; Close after Commit is a no-op.
func CreateOutput(path string) (*Output, error) {
	if path == "" || path == StdioPath {
		return &Output{path: StdioPath, w: os.Stdout, finish: func() error { return nil }}, nil
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create output %q: %w", path, err)
	}
	w, finish, err := compress(DetectCompression(path), tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("create output %q: %w", path, err)
	}
	return &Output{path: path, tmp: tmp, w: w, finish: finish}, nil
}

// Path returns the final destination path.
func (o *Output) Path() string { return o.path }

func (o *Output) Write(p []byte) (int, error) {
	if o.committed || o.closed {
		return 0, ErrCommitted
	}
	return o.w.Write(p)
}

// Commit finishes compression, syncs the temporary file and renames it into place.
func (o *Output) Commit() error {
	if o.committed {
		return nil
	}
	if o.closed {
		return errors.New("commit after close")
	}
	if err := o.finish(); err != nil {
		return fmt.Errorf("commit output %q: %w", o.path, err)
	}
	if o.tmp == nil {
		o.committed = true
		return nil
	}
	if err := o.tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("commit output %q: %w", o.path, err)
	}
	if err := o.tmp.Sync(); err != nil {
		return fmt.Errorf("commit output %q: %w", o.path, err)
	}
	if err := o.tmp.Close(); err != nil {
		return fmt.Errorf("commit output %q: %w", o.path, err)
	}
	// атомарная замена
	if err := os.Rename(o.tmp.Name(), o.path); err != nil {
		os.Remove(o.tmp.Name())
		o.closed = true
		return fmt.Errorf("commit output %q: %w", o.path, err)
	}
	o.committed = true
	return nil
}

// Close discards the output unless it was committed.
func (o *Output) Close() error {
	if o.committed || o.closed {
		return nil
	}
	o.closed = true
	if o.tmp == nil {
		return nil
	}
	closeErr := o.tmp.Close()
	if err := os.Remove(o.tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return closeErr
}
