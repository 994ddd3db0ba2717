package types

import (
	"time"

	"safetysight/lifecycle"
)

// Alert statuses.
const (
	AlertActive       lifecycle.Status = "active"
	AlertAcknowledged lifecycle.Status = "acknowledged"
	AlertResolved     lifecycle.Status = "resolved"
)

// AlertLifecycle: active -> acknowledged -> resolved.
var AlertLifecycle = lifecycle.New("alert",
	[]lifecycle.Status{AlertActive, AlertAcknowledged, AlertResolved},
	nil,
)

// AlertTypes mirrors the alert feed's type taxonomy.
var AlertTypes = []string{"fire", "crowd", "weather", "security", "medical", "system"}

// Alert is a zone-scoped safety alert. Only admins and responders may
// acknowledge or resolve one.
type Alert struct {
	ID          string           `firestore:"-" json:"id"`
	Type        string           `firestore:"type" json:"type"`
	Title       string           `firestore:"title" json:"title"`
	Description string           `firestore:"description" json:"description"`
	Severity    Severity         `firestore:"severity" json:"severity"`
	Zone        string           `firestore:"zone" json:"zone"`
	Timestamp   time.Time        `firestore:"timestamp" json:"timestamp"`
	Status      lifecycle.Status `firestore:"status" json:"status"`
	Source      string           `firestore:"source" json:"source"`
}

func (a *Alert) RecordID() string { return a.ID }
func (a *Alert) SetRecordID(id string) { a.ID = id }
func (a *Alert) RecordStatus() lifecycle.Status { return a.Status }
func (a *Alert) SetRecordStatus(s lifecycle.Status) { a.Status = s }
func (a *Alert) StampCreated(t time.Time) { a.Timestamp = t.UTC() }
