// Package artifact persists rendered log streams to files.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileMode is the permission used for new artifacts.
const FileMode os.FileMode = 0o644

var _ error = (*WriteError)(nil)

// WriteError is returned when an artifact could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("unable to write %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// FileName returns the artifact name for the index-th newest stream of a function, e.g. "Qa-DocumentEvent-1.log".
func FileName(env, function string, index int) string {
	return fmt.Sprintf("%s-%s-%d.log", env, function, index)
}

// Writer writes artifacts into a directory.
type Writer struct {
	fs  afero.Fs
	dir string
}

// NewWriter returns a Writer placing files in dir. An empty dir means the current working directory.
func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{fs: fs, dir: dir}
}

// Write stores content under the artifact name, overwriting any existing file, and returns the path written.
func (w *Writer) Write(env, function string, index int, content string) (string, error) {
	path := FileName(env, function, index)
	if w.dir != "" {
		path = filepath.Join(w.dir, path)
		if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
			return "", &WriteError{Path: path, Err: err}
		}
	}

	if err := afero.WriteFile(w.fs, path, []byte(content), FileMode); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}
