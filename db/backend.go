package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"safetysight/lifecycle"
	"safetysight/store"
)

// Collection names, one per entity type.
const (
	CollectionUsers          = "users"
	CollectionIncidents      = "user-reports"
	CollectionMissingPersons = "missing-persons"
	CollectionLostFound      = "lost-found-items"
	CollectionTasks          = "tasks"
	CollectionAlerts         = "alerts"
)

// FirestoreBackend implements store.Backend on top of Firestore. The server
// is the sole arbiter of write ordering; there is no version check before an
// update (last write wins).
type FirestoreBackend struct {
	client *firestore.Client
}

func NewFirestoreBackend(client *firestore.Client) *FirestoreBackend {
	return &FirestoreBackend{client: client}
}

// NewID reserves a fresh document id without writing anything.
func (b *FirestoreBackend) NewID(collection string) string {
	return b.client.Collection(collection).NewDoc().ID
}

// PutRecord writes the full record document.
func (b *FirestoreBackend) PutRecord(ctx context.Context, collection, id string, rec any) error {
	if _, err := b.client.Collection(collection).Doc(id).Set(ctx, rec); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

// SetStatus updates only the status field of an existing document.
func (b *FirestoreBackend) SetStatus(ctx context.Context, collection, id string, status lifecycle.Status) error {
	_, err := b.client.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(status)},
	})
	if err != nil {
		return fmt.Errorf("update %s/%s status: %w", collection, id, err)
	}
	return nil
}

// LoadRecords warms a store from Firestore, newest first by the given
// timestamp field. Documents that fail to decode are skipped with a warning
// rather than aborting the whole load.
func LoadRecords[T store.Record](ctx context.Context, client *firestore.Client, collection, orderBy string, newRecord func() T) ([]T, error) {
	iter := client.Collection(collection).
		OrderBy(orderBy, firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var out []T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating %s: %w", collection, err)
		}

		rec := newRecord()
		if err := doc.DataTo(rec); err != nil {
			log.Printf("Warning: skipping %s/%s: %v", collection, doc.Ref.ID, err)
			continue
		}
		rec.SetRecordID(doc.Ref.ID)
		out = append(out, rec)
	}
	return out, nil
}
