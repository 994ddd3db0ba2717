package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"safetysight/lifecycle"
)

// MemoryBackend is an in-process Backend used by tests and by local runs
// without Firebase credentials. Documents are kept as opaque values keyed by
// collection and id.
type MemoryBackend struct {
	mu   sync.Mutex
	docs map[string]map[string]any

	// FailWrites makes every write return this error, for exercising the
	// no-partial-commit contract.
	FailWrites error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string]map[string]any)}
}

func (b *MemoryBackend) NewID(collection string) string {
	return uuid.NewString()
}

func (b *MemoryBackend) PutRecord(ctx context.Context, collection, id string, rec any) error {
	if b.FailWrites != nil {
		return b.FailWrites
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.docs[collection] == nil {
		b.docs[collection] = make(map[string]any)
	}
	b.docs[collection][id] = rec
	return nil
}

func (b *MemoryBackend) SetStatus(ctx context.Context, collection, id string, status lifecycle.Status) error {
	if b.FailWrites != nil {
		return b.FailWrites
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.docs[collection][id]; !ok {
		return &NotFoundError{Entity: collection, ID: id}
	}
	return nil
}

// Doc returns the stored document, for assertions.
func (b *MemoryBackend) Doc(collection, id string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.docs[collection][id]
	return rec, ok
}
