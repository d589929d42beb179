package state

import (
	"context"
	"encoding/json"
	"sync"
)

// Store is the persistence contract for working-memory documents.
//
// Load returns ErrStateNotFound when no document exists for the resource;
// callers default to an empty state. Commit performs a shallow merge: it
// overwrites only the cart and orders keys of the stored document and leaves
// every other top-level key exactly as found.
type Store interface {
	Load(ctx context.Context, resourceID string) (*ResourceState, error)
	Commit(ctx context.Context, resourceID string, update CommitUpdate) error
}

// MemoryStore keeps raw documents in process memory. It is the default
// backend and the one the tests run against.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Load(ctx context.Context, resourceID string) (*ResourceState, error) {
	if resourceID == "" {
		return nil, ErrInvalidResource
	}
	s.mu.RLock()
	raw, ok := s.docs[resourceID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrStateNotFound
	}
	return DecodeDocument(raw)
}

func (s *MemoryStore) Commit(ctx context.Context, resourceID string, update CommitUpdate) error {
	if resourceID == "" {
		return ErrInvalidResource
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, err := MergeDocument(s.docs[resourceID], update)
	if err != nil {
		return err
	}
	s.docs[resourceID] = merged
	return nil
}

// Put seeds a raw document, including sibling keys this engine does not own.
func (s *MemoryStore) Put(resourceID string, doc json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[resourceID] = append(json.RawMessage(nil), doc...)
}

// Document returns the raw stored document, or nil when absent.
func (s *MemoryStore) Document(resourceID string) json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.docs[resourceID]
	if !ok {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
