// Package storage abstracts the file system used to persist feature metadata.
//
// Metadata files are small sidecar blobs (language lists, vocabularies) written
// once when a dataset is finalized and read back when it is loaded. Every
// backend reports a missing file with an error wrapping errs.ErrMetadataNotFound,
// so callers can decide whether absence is fatal.
//
// Three backends are provided:
//   - Local: the operating system file system
//   - Memory: an in-process map, handy for tests and dry runs
//   - S3: S3-compatible object storage
package storage

import (
	"context"
	"strings"
)

// FS is the minimal file-system surface needed by metadata readers and writers.
type FS interface {
	// Join builds a path from elements using the backend's separator.
	Join(elem ...string) string

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// ReadFile returns the whole content of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile replaces the content of the file at path, creating it and any
	// missing parent directories.
	WriteFile(ctx context.Context, path string, data []byte) error
}

// WriteLines writes lines joined by newlines, with a trailing newline.
func WriteLines(ctx context.Context, fsys FS, path string, lines []string) error {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return fsys.WriteFile(ctx, path, []byte(sb.String()))
}

// ReadLines reads a newline-delimited file. Each line is trimmed of
// surrounding whitespace and empty lines are dropped.
func ReadLines(ctx context.Context, fsys FS, path string) ([]string, error) {
	data, err := fsys.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	raw := strings.Split(string(data), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines, nil
}
