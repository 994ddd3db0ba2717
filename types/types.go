// Package types defines the SafetySight entities shared across the backend.
// Every mutable entity carries a status that advances along a fixed
// per-entity order (see the lifecycle package); records are never deleted.
package types

// Role is the access level of an authenticated principal. It is fixed for
// the lifetime of a session; there is no runtime elevation.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleResponder Role = "responder"
	RoleUser      Role = "user"
)

// Severity is the ordinal classification driving color coding and admin
// action availability.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Zones are the coarse spatial partitions of the monitored venue.
var Zones = []string{"Zone A", "Zone B", "Zone C", "Zone D", "Zone E"}

// Identity is the authenticated principal. Created at login/registration,
// immutable for the session, discarded at logout.
type Identity struct {
	ID    string `firestore:"-" json:"id"`
	Name  string `firestore:"name" json:"name"`
	Email string `firestore:"email" json:"email"`
	Role  Role   `firestore:"role" json:"role"`
	Zone  string `firestore:"zone,omitempty" json:"zone,omitempty"`
}
