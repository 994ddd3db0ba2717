// Package store holds the client-visible record lists for the five entity
// domains. Each Store mediates create/read/update against an injected
// Backend (Firestore in production, in-memory in tests) and keeps a local
// newest-first snapshot that is updated synchronously once a write succeeds.
// Delete is deliberately unsupported: records are an append-only trail.
package store

import (
	"context"
	"sync"
	"time"

	"safetysight/lifecycle"
)

// Record is what a store needs from an entity type. The entity types in the
// types package satisfy it with pointer receivers.
type Record interface {
	RecordID() string
	SetRecordID(id string)
	RecordStatus() lifecycle.Status
	SetRecordStatus(s lifecycle.Status)
	StampCreated(t time.Time)
}

// Backend is the document-store boundary. One collection per entity type;
// the backend assigns nothing beyond durable persistence; ids and stamps
// are chosen by the store before the write.
type Backend interface {
	NewID(collection string) string
	PutRecord(ctx context.Context, collection, id string, rec any) error
	SetStatus(ctx context.Context, collection, id string, status lifecycle.Status) error
}

// Store is the generic entity store, instantiated once per entity type.
type Store[T Record] struct {
	collection string
	machine    *lifecycle.Machine
	backend    Backend
	validate   func(T) error
	now        func() time.Time

	mu      sync.RWMutex
	records []T // newest first
}

// New builds a store for one collection. validate runs before any network
// write and gates Create with a ValidationError.
func New[T Record](collection string, machine *lifecycle.Machine, backend Backend, validate func(T) error) *Store[T] {
	return &Store[T]{
		collection: collection,
		machine:    machine,
		backend:    backend,
		validate:   validate,
		now:        time.Now,
	}
}

// Collection returns the backing collection name.
func (s *Store[T]) Collection() string { return s.collection }

// Warm seeds the local snapshot from previously persisted records. The input
// must already be newest-first; existing cached records are kept ahead of it.
func (s *Store[T]) Warm(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Create validates rec, persists it, then prepends it to the local list.
// On success the record carries a fresh id, the entity's initial status and
// a creation stamp. A failed write leaves the local list untouched.
func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := s.validate(rec); err != nil {
		return zero, err
	}

	rec.SetRecordID(s.backend.NewID(s.collection))
	rec.SetRecordStatus(s.machine.Initial())
	rec.StampCreated(s.now())

	if err := s.backend.PutRecord(ctx, s.collection, rec.RecordID(), rec); err != nil {
		return zero, &WriteError{Entity: s.machine.Entity(), Op: "create", Err: err}
	}

	s.mu.Lock()
	s.records = append([]T{rec}, s.records...)
	s.mu.Unlock()
	return rec, nil
}

// List returns a newest-first snapshot of the records keep accepts. A nil
// keep returns everything. The returned slice is the caller's to own.
func (s *Store[T]) List(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.records))
	for _, rec := range s.records {
		if keep == nil || keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	var zero T
	return zero, &NotFoundError{Entity: s.machine.Entity(), ID: id}
}

// UpdateStatus advances one record along its lifecycle. The transition must
// be a single legal forward step; anything else fails with
// *lifecycle.InvalidTransitionError and the record is unchanged. The
// persisted document is updated before the local copy.
func (s *Store[T]) UpdateStatus(ctx context.Context, id string, next lifecycle.Status) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	var target T
	found := false
	for _, rec := range s.records {
		if rec.RecordID() == id {
			target = rec
			found = true
			break
		}
	}
	if !found {
		return zero, &NotFoundError{Entity: s.machine.Entity(), ID: id}
	}

	if err := s.machine.Step(target.RecordStatus(), next); err != nil {
		return zero, err
	}

	if err := s.backend.SetStatus(ctx, s.collection, id, next); err != nil {
		return zero, &WriteError{Entity: s.machine.Entity(), Op: "update-status", Err: err}
	}

	target.SetRecordStatus(next)
	return target, nil
}

// Len reports how many records the store currently holds.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
