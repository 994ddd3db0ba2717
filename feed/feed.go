// Package feed bridges the realtime store's summary channel to the rest of
// the app. Subscribers receive the full AISummary snapshot on every change,
// or nil when the upstream value is absent; channel failures count as "no
// data" and are never fatal.
package feed

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"

	firebasedb "firebase.google.com/go/db"

	"safetysight/types"
)

// SummaryPath is where the summary producer publishes the current snapshot.
const SummaryPath = "summaries/current"

// SubscriptionError wraps a realtime-channel failure. Consumers treat it as
// an empty snapshot.
type SubscriptionError struct {
	Path string
	Err  error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("realtime subscription %q: %v", e.Path, e.Err)
}

func (e *SubscriptionError) Unwrap() error { return e.Err }

// Source fetches the current summary snapshot; nil means absent.
type Source interface {
	Fetch(ctx context.Context) (*types.AISummary, error)
}

// RTDBSource reads the snapshot from the Firebase Realtime Database.
type RTDBSource struct {
	ref *firebasedb.Ref
}

func NewRTDBSource(client *firebasedb.Client, path string) *RTDBSource {
	return &RTDBSource{ref: client.NewRef(path)}
}

func (s *RTDBSource) Fetch(ctx context.Context) (*types.AISummary, error) {
	var snapshot *types.AISummary
	if err := s.ref.Get(ctx, &snapshot); err != nil {
		return nil, &SubscriptionError{Path: s.ref.Path, Err: err}
	}
	return snapshot, nil
}

// Feed is the long-lived watcher. The admin SDK exposes no push listener, so
// the watcher polls its source and fires callbacks only when the snapshot
// actually changed, the same change-detection loop the summary producer
// runs on its side.
type Feed struct {
	source   Source
	interval time.Duration

	// deliverMu serializes snapshot delivery, so a subscriber's replay can
	// never arrive after a newer Push and leave it holding stale data.
	deliverMu sync.Mutex

	mu     sync.Mutex
	last   *types.AISummary
	nextID int
	subs   map[int]func(*types.AISummary)
}

// New builds a feed polling source every interval.
func New(source Source, interval time.Duration) *Feed {
	return &Feed{
		source:   source,
		interval: interval,
		subs:     make(map[int]func(*types.AISummary)),
	}
}

// Run drives the watcher until ctx is cancelled. It belongs in its own
// goroutine.
func (f *Feed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.poll(ctx)
		}
	}
}

func (f *Feed) poll(ctx context.Context) {
	snapshot, err := f.source.Fetch(ctx)
	if err != nil {
		log.Printf("Warning: summary feed fetch failed: %v", err)
		snapshot = nil
	}
	f.Push(snapshot)
}

// Push delivers a snapshot to subscribers if it differs from the previous
// one. Tests drive the feed through it directly.
func (f *Feed) Push(snapshot *types.AISummary) {
	f.deliverMu.Lock()
	defer f.deliverMu.Unlock()

	f.mu.Lock()
	if reflect.DeepEqual(snapshot, f.last) {
		f.mu.Unlock()
		return
	}
	f.last = snapshot
	subs := make([]func(*types.AISummary), 0, len(f.subs))
	for _, cb := range f.subs {
		subs = append(subs, cb)
	}
	f.mu.Unlock()

	for _, cb := range subs {
		cb(snapshot)
	}
}

// Latest returns the most recently delivered snapshot, nil when absent.
func (f *Feed) Latest() *types.AISummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Subscribe registers a callback and immediately replays the current
// snapshot to it. The replay completes before any concurrent Push delivers,
// so the callback always sees snapshots in order. The returned unsubscribe
// is idempotent and callable at any time; subscriptions are scoped to the
// consuming view's lifetime. Callbacks must not call back into the feed.
func (f *Feed) Subscribe(cb func(*types.AISummary)) (unsubscribe func()) {
	f.deliverMu.Lock()
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = cb
	current := f.last
	f.mu.Unlock()

	cb(current)
	f.deliverMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
}
