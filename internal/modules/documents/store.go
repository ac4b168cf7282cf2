package documents

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/gamdel/core/internal/modules/similarity"
)

// ErrEmptyText rejects documents whose extracted text is empty after
// trimming; such documents are never added to a tenant.
var ErrEmptyText = errors.New("document text is empty")

// tenantState is one tenant's in-memory document set and derived index.
// The index is immutable; mutations build a fresh one and publish it under
// the write lock, so a reader holding the read lock always sees an index
// that matches the document map.
type tenantState struct {
	mu    sync.RWMutex
	docs  map[string]string
	index *similarity.Index
}

func (t *tenantState) rebuildLocked() {
	if len(t.docs) == 0 {
		t.index = nil
		return
	}
	snapshot := make(map[string]string, len(t.docs))
	for name, text := range t.docs {
		snapshot[name] = text
	}
	t.index = similarity.Build(snapshot)
}

// Store holds every tenant's in-memory document set. Tenants are fully
// independent: the registry lock only guards the tenant map itself.
type Store struct {
	mu      sync.RWMutex
	tenants map[string]*tenantState
}

func NewStore() *Store {
	return &Store{tenants: make(map[string]*tenantState)}
}

func (s *Store) tenant(key string, create bool) *tenantState {
	s.mu.RLock()
	st, ok := s.tenants[key]
	s.mu.RUnlock()
	if ok || !create {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.tenants[key]; ok {
		return st
	}
	st = &tenantState{docs: make(map[string]string)}
	s.tenants[key] = st
	return st
}

// Put adds or replaces a document and synchronously rebuilds the tenant's
// similarity index before returning.
func (s *Store) Put(tenant, name, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	st := s.tenant(tenant, true)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.docs[name] = text
	st.rebuildLocked()
	return nil
}

// Remove deletes a document; absent names are a no-op. The index is rebuilt
// before returning.
func (s *Store) Remove(tenant, name string) {
	st := s.tenant(tenant, false)
	if st == nil {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.docs[name]; !ok {
		return
	}
	delete(st.docs, name)
	st.rebuildLocked()
}

// RemoveAll destroys a tenant's in-memory state entirely.
func (s *Store) RemoveAll(tenant string) {
	s.mu.Lock()
	delete(s.tenants, tenant)
	s.mu.Unlock()
}

// Get returns one document's text.
func (s *Store) Get(tenant, name string) (string, bool) {
	st := s.tenant(tenant, false)
	if st == nil {
		return "", false
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	text, ok := st.docs[name]
	return text, ok
}

// List returns a copy of the tenant's document map; empty for unknown
// tenants.
func (s *Store) List(tenant string) map[string]string {
	st := s.tenant(tenant, false)
	if st == nil {
		return map[string]string{}
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(map[string]string, len(st.docs))
	for name, text := range st.docs {
		out[name] = text
	}
	return out
}

// Count returns the number of documents a tenant holds.
func (s *Store) Count(tenant string) int {
	st := s.tenant(tenant, false)
	if st == nil {
		return 0
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.docs)
}

// Snapshot returns a consistent view for resolution: sorted document names,
// the document map, and the index built from exactly that document set.
func (s *Store) Snapshot(tenant string) (names []string, docs map[string]string, index *similarity.Index) {
	st := s.tenant(tenant, false)
	if st == nil {
		return nil, map[string]string{}, nil
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	docs = make(map[string]string, len(st.docs))
	names = make([]string, 0, len(st.docs))
	for name, text := range st.docs {
		docs[name] = text
		names = append(names, name)
	}
	sort.Strings(names)
	return names, docs, st.index
}
