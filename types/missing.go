package types

import (
	"time"

	"safetysight/lifecycle"
)

// MissingPersonReport statuses.
const (
	MissingActive   lifecycle.Status = "active"
	MissingMatched  lifecycle.Status = "matched"
	MissingResolved lifecycle.Status = "resolved"
)

// MissingPersonLifecycle: active -> matched -> resolved.
var MissingPersonLifecycle = lifecycle.New("missing-person",
	[]lifecycle.Status{MissingActive, MissingMatched, MissingResolved},
	nil,
)

// MissingPersonReport is created with an optional photo; the photo upload
// completes (or fails) before the record is persisted, so a stored record
// never references an absent attachment.
type MissingPersonReport struct {
	ID           string           `firestore:"-" json:"id"`
	FullName     string           `firestore:"fullName" json:"fullName"`
	Age          string           `firestore:"age" json:"age"`
	LastLocation string           `firestore:"lastLocation" json:"lastLocation"`
	LastTime     string           `firestore:"lastTime" json:"lastTime"`
	Clothing     string           `firestore:"clothing" json:"clothing"`
	Description  string           `firestore:"description" json:"description"`
	Contact      string           `firestore:"contact" json:"contact"`
	Relationship string           `firestore:"relationship" json:"relationship"`
	PhotoURL     string           `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
	ReportedBy   string           `firestore:"reportedBy" json:"reportedBy"`
	Status       lifecycle.Status `firestore:"status" json:"status"`
	CreatedAt    time.Time        `firestore:"createdAt" json:"createdAt"`
}

func (r *MissingPersonReport) RecordID() string { return r.ID }
func (r *MissingPersonReport) SetRecordID(id string) { r.ID = id }
func (r *MissingPersonReport) RecordStatus() lifecycle.Status { return r.Status }
func (r *MissingPersonReport) SetRecordStatus(s lifecycle.Status) { r.Status = s }
func (r *MissingPersonReport) StampCreated(t time.Time) { r.CreatedAt = t.UTC() }
