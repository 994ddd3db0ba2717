package types

import (
	"time"

	"safetysight/lifecycle"
)

// IncidentReport statuses, in lifecycle order.
const (
	IncidentSubmitted   lifecycle.Status = "submitted"
	IncidentUnderReview lifecycle.Status = "under-review"
	IncidentInProgress  lifecycle.Status = "in-progress"
	IncidentResolved    lifecycle.Status = "resolved"
)

// IncidentLifecycle: submitted -> under-review -> in-progress -> resolved.
var IncidentLifecycle = lifecycle.New("incident-report",
	[]lifecycle.Status{IncidentSubmitted, IncidentUnderReview, IncidentInProgress, IncidentResolved},
	nil,
)

// IncidentCategories mirrors the report form's category choices.
var IncidentCategories = []string{
	"General", "Security", "Medical", "Fire Safety",
	"Crowd Control", "Infrastructure", "Weather",
}

// IncidentReport is a user-submitted incident. Any authenticated role may
// create one; only admins and responders advance its status. ReportedBy and
// AssignedTo are display names, not identifiers.
type IncidentReport struct {
	ID            string           `firestore:"-" json:"id"`
	Title         string           `firestore:"title" json:"title"`
	Description   string           `firestore:"description" json:"description"`
	Category      string           `firestore:"category" json:"category"`
	Severity      Severity         `firestore:"severity" json:"severity"`
	Location      string           `firestore:"location" json:"location"`
	Zone          string           `firestore:"zone" json:"zone"`
	Status        lifecycle.Status `firestore:"status" json:"status"`
	ReportedBy    string           `firestore:"reportedBy" json:"reportedBy"`
	ReportedAt    time.Time        `firestore:"reportedAt" json:"reportedAt"`
	ContactPhone  string           `firestore:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	ContactEmail  string           `firestore:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	MediaAttached bool             `firestore:"mediaAttached" json:"mediaAttached"`
	MediaURL      string           `firestore:"mediaURL,omitempty" json:"mediaURL,omitempty"`
	AssignedTo    string           `firestore:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	ResponseTime  string           `firestore:"responseTime,omitempty" json:"responseTime,omitempty"`
}

func (r *IncidentReport) RecordID() string { return r.ID }
func (r *IncidentReport) SetRecordID(id string) { r.ID = id }
func (r *IncidentReport) RecordStatus() lifecycle.Status { return r.Status }
func (r *IncidentReport) SetRecordStatus(s lifecycle.Status) { r.Status = s }
func (r *IncidentReport) StampCreated(t time.Time) { r.ReportedAt = t.UTC() }
