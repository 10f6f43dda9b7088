package settings

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
)

// Well-known keys.
const (
	KeyRmanTree = "RMANTREE"
	KeyRmsTree  = "RMSTREE"
	KeyOCIO     = "OCIO"
	KeyLastBxdf = "last bxdf"
)

// Store is a string-keyed settings lookup.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Writer is implemented by stores that persist values.
type Writer interface {
	Set(ctx context.Context, key, value string) error
}

// EnvStore reads settings from the process environment. Empty variables are
// treated as absent.
type EnvStore struct {
	lookup func(string) (string, bool)
}

// NewEnvStore returns a store backed by os.LookupEnv.
func NewEnvStore() EnvStore {
	return EnvStore{lookup: os.LookupEnv}
}

func (e EnvStore) Get(_ context.Context, key string) (string, bool, error) {
	lookup := e.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false, nil
	}
	return value, true, nil
}

// MapStore is an in-memory store safe for concurrent use.
type MapStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapStore copies values into a new store.
func NewMapStore(values map[string]string) *MapStore {
	m := &MapStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MapStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MapStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MapStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Layered consults stores in order; the first store holding the key wins.
type Layered []Store

func (l Layered) Get(ctx context.Context, key string) (string, bool, error) {
	for _, store := range l {
		if store == nil {
			continue
		}
		value, ok, err := store.Get(ctx, key)
		if err != nil {
			return "", false, err
		}
		if ok {
			return value, true, nil
		}
	}
	return "", false, nil
}
