package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/arloliu/featkit/errs"
)

// Memory implements FS with an in-process map keyed by slash-separated paths.
// It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

var _ FS = (*Memory)(nil)

// NewMemory creates an empty in-memory file system.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// Join joins path elements with forward slashes.
func (m *Memory) Join(elem ...string) string {
	return path.Join(elem...)
}

func (m *Memory) Exists(_ context.Context, p string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[cleanKey(p)]

	return ok, nil
}

func (m *Memory) ReadFile(_ context.Context, p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[cleanKey(p)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrMetadataNotFound, p)
	}

	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

func (m *Memory) WriteFile(_ context.Context, p string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.files[cleanKey(p)] = buf
	m.mu.Unlock()

	return nil
}

func cleanKey(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// Paths returns every stored path in ascending order.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}
