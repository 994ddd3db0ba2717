package types

import (
	"time"

	"safetysight/lifecycle"
)

// LostFoundItem statuses.
const (
	LostFoundActive   lifecycle.Status = "active"
	LostFoundMatched  lifecycle.Status = "matched"
	LostFoundReturned lifecycle.Status = "returned"
)

// LostFoundLifecycle: active -> matched -> returned, strictly step by step.
var LostFoundLifecycle = lifecycle.New("lost-found-item",
	[]lifecycle.Status{LostFoundActive, LostFoundMatched, LostFoundReturned},
	nil,
)

// LostFoundItem is a lost or found item report. Transitions are monotonic;
// there is no way back from matched or returned.
type LostFoundItem struct {
	ID           string           `firestore:"-" json:"id"`
	Type         string           `firestore:"type" json:"type"` // "lost" or "found"
	Category     string           `firestore:"category" json:"category"`
	Description  string           `firestore:"description" json:"description"`
	Location     string           `firestore:"location" json:"location"`
	DateReported time.Time        `firestore:"dateReported" json:"dateReported"`
	ContactName  string           `firestore:"contactName" json:"contactName"`
	ContactPhone string           `firestore:"contactPhone" json:"contactPhone"`
	ContactEmail string           `firestore:"contactEmail" json:"contactEmail"`
	Status       lifecycle.Status `firestore:"status" json:"status"`
	ImageURL     string           `firestore:"imageURL,omitempty" json:"imageURL,omitempty"`
}

func (i *LostFoundItem) RecordID() string { return i.ID }
func (i *LostFoundItem) SetRecordID(id string) { i.ID = id }
func (i *LostFoundItem) RecordStatus() lifecycle.Status { return i.Status }
func (i *LostFoundItem) SetRecordStatus(s lifecycle.Status) { i.Status = s }
func (i *LostFoundItem) StampCreated(t time.Time) { i.DateReported = t.UTC() }
