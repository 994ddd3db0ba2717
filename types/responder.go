package types

import "time"

// Responder status values. Responder availability is simulated in this
// deployment, not driven by field hardware, so there is no lifecycle order.
const (
	ResponderAvailable = "available"
	ResponderBusy      = "busy"
	ResponderOffline   = "offline"
	ResponderEmergency = "emergency"
)

// Responder is a dispatchable field operator. Read-mostly: the directory is
// seeded at startup and only the simulation touches status and LastUpdate.
type Responder struct {
	ID          string    `firestore:"-" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Role        string    `firestore:"role" json:"role"`
	Zone        string    `firestore:"zone" json:"zone"`
	Status      string    `firestore:"status" json:"status"`
	Location    string    `firestore:"location" json:"location"`
	LastUpdate  time.Time `firestore:"lastUpdate" json:"lastUpdate"`
	Contact     string    `firestore:"contact" json:"contact"`
	CurrentTask string    `firestore:"currentTask,omitempty" json:"currentTask,omitempty"`
	Skills      []string  `firestore:"skills" json:"skills"`
}
