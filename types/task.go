package types

import (
	"time"

	"safetysight/lifecycle"
)

// Task statuses.
const (
	TaskPending    lifecycle.Status = "pending"
	TaskInProgress lifecycle.Status = "in-progress"
	TaskCompleted  lifecycle.Status = "completed"
	TaskCancelled  lifecycle.Status = "cancelled"
)

// TaskLifecycle: pending -> in-progress -> completed, with a cancel branch
// from either non-terminal state. Completed and cancelled are terminal.
var TaskLifecycle = lifecycle.New("task",
	[]lifecycle.Status{TaskPending, TaskInProgress, TaskCompleted},
	map[lifecycle.Status][]lifecycle.Status{
		TaskPending:    {TaskCancelled},
		TaskInProgress: {TaskCancelled},
	},
)

// TaskTypes mirrors the create-task form.
var TaskTypes = []string{"incident", "maintenance", "security", "crowd-control"}

// Task is an admin-created unit of work, zone-scoped and optionally assigned
// to a responder team by display name.
type Task struct {
	ID          string           `firestore:"-" json:"id"`
	Title       string           `firestore:"title" json:"title"`
	Description string           `firestore:"description" json:"description"`
	Priority    Severity         `firestore:"priority" json:"priority"` // high/medium/low
	Status      lifecycle.Status `firestore:"status" json:"status"`
	AssignedTo  string           `firestore:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Zone        string           `firestore:"zone" json:"zone"`
	CreatedAt   time.Time        `firestore:"createdAt" json:"createdAt"`
	DueTime     string           `firestore:"dueTime,omitempty" json:"dueTime,omitempty"`
	Type        string           `firestore:"type" json:"type"`
}

func (t *Task) RecordID() string { return t.ID }
func (t *Task) SetRecordID(id string) { t.ID = id }
func (t *Task) RecordStatus() lifecycle.Status { return t.Status }
func (t *Task) SetRecordStatus(s lifecycle.Status) { t.Status = s }
func (t *Task) StampCreated(ts time.Time) { t.CreatedAt = ts.UTC() }
