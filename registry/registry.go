// Package registry implements an in-memory filter registry that hosts can
// embed or use as-is. It stores what [tmfilters.Plugin] registers and
// nothing else: no compilation or rendering happens here.
package registry

import (
	"sort"
	"sync"

	"github.com/soypat/tmfilters"
)

// Entry is a registered filter program.
type Entry struct {
	Source   string
	Bindings []tmfilters.Binding
}

// Map is a concurrency safe filter registry. The zero value is ready to use.
// A Map is its own [tmfilters.Host].
type Map struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

var (
	_ tmfilters.Registry = (*Map)(nil)
	_ tmfilters.Host     = (*Map)(nil)
)

// New returns an empty registry.
func New() *Map {
	return &Map{entries: make(map[string]Entry)}
}

// Filters returns m.
func (m *Map) Filters() tmfilters.Registry { return m }

// Register stores the program under name, replacing any previous entry.
func (m *Map) Register(name, source string, bindings []tmfilters.Binding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]Entry)
	}
	m.entries[name] = Entry{
		Source:   source,
		Bindings: append([]tmfilters.Binding{}, bindings...),
	}
	return nil
}

// Unregister removes the named entry. Unknown names are a no-op.
func (m *Map) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
	return nil
}

// Lookup returns the entry registered under name.
func (m *Map) Lookup(name string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[name]
	if ok {
		e.Bindings = append([]tmfilters.Binding{}, e.Bindings...)
	}
	return e, ok
}

// IsRegistered reports whether name is registered.
func (m *Map) IsRegistered(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[name]
	return ok
}

// Names returns the registered names sorted alphabetically.
func (m *Map) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered filters.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
