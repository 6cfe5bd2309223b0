package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arloliu/featkit/errs"
)

// Local implements FS on the operating system file system.
type Local struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

var _ FS = (*Local)(nil)

// NewLocal creates a Local file system with 0o755 directories and 0o644 files.
func NewLocal() *Local {
	return &Local{dirPerm: 0o755, filePerm: 0o644}
}

// Join joins path elements with the OS separator.
func (l *Local) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Exists reports whether path exists and is a regular file.
func (l *Local) Exists(_ context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("stat %q: %w", path, err)
	}

	return info.Mode().IsRegular(), nil
}

// ReadFile reads path in a single open-read-close sequence.
func (l *Local) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrMetadataNotFound, path)
		}

		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	return data, nil
}

// WriteFile truncates or creates path and writes data to it.
// A failed write may leave a partially written file behind.
func (l *Local) WriteFile(ctx context.Context, path string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, l.dirPerm); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, l.filePerm)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	return nil
}
