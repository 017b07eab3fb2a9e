package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps documents in a map.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

func (s *MemoryStore) Save(ctx context.Context, doc *Document) error {
	if err := prepare(doc); err != nil {
		return err
	}
	cp := *doc
	s.mu.Lock()
	s.docs[doc.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok || doc.IsExpired() {
		return nil, notFound(id)
	}
	cp := *doc
	return &cp, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Document, error) {
	s.mu.RLock()
	out := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if doc.IsExpired() {
			continue
		}
		cp := *doc
		out = append(out, &cp)
	}
	s.mu.RUnlock()
	return newestFirst(out, limit), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, doc := range s.docs {
		if doc.IsExpired() {
			delete(s.docs, id)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func newestFirst(docs []*Document, limit int) []*Document {
	slices.SortFunc(docs, func(a, b *Document) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}

var _ Store = (*MemoryStore)(nil)
