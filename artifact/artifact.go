// Package artifact writes generated files (HTML emails, invites, campaign
// CSVs, JSON exports) into the output directory.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var ErrBadName = errors.New("artifact: invalid file name")

// Dir is an output directory.
type Dir struct {
	path string
	log  *zap.Logger
}

// NewDir creates path when needed.
func NewDir(path string, log *zap.Logger) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: create %s: %w", path, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dir{path: path, log: log}, nil
}

func (d *Dir) Path() string { return d.path }

// Write streams fn's output to name inside the directory. The file only
// appears once fn has succeeded.
func (d *Dir) Write(name string, fn func(io.Writer) error) (string, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == ".." || strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	target := filepath.Join(d.path, base)

	tmp, err := os.CreateTemp(d.path, "."+base+".*")
	if err != nil {
		return "", fmt.Errorf("artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("artifact: write %s: %w", base, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("artifact: write %s: %w", base, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("artifact: save %s: %w", base, err)
	}
	d.log.Info("artifact written", zap.String("path", target))
	return target, nil
}

// WriteString writes content to name.
func (d *Dir) WriteString(name, content string) (string, error) {
	return d.Write(name, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
}
