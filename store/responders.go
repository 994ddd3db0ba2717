package store

import (
	"sync"
	"time"

	"safetysight/types"
)

// ResponderDirectory holds the field-responder roster. It is read-mostly:
// the roster is seeded at startup and only the availability simulation
// touches status and LastUpdate.
type ResponderDirectory struct {
	mu         sync.RWMutex
	responders []*types.Responder
}

// NewResponderDirectory seeds the demo roster.
func NewResponderDirectory() *ResponderDirectory {
	now := time.Now().UTC()
	return &ResponderDirectory{
		responders: []*types.Responder{
			{
				ID: "1", Name: "Sarah Johnson", Role: "Security Lead", Zone: "Zone A",
				Status: types.ResponderAvailable, Location: "Main Entrance",
				LastUpdate: now.Add(-2 * time.Minute), Contact: "+1 (555) 0123",
				Skills: []string{"Crowd Control", "Emergency Response", "First Aid"},
			},
			{
				ID: "2", Name: "Mike Chen", Role: "Crowd Control", Zone: "Zone B",
				Status: types.ResponderBusy, Location: "Food Court",
				LastUpdate: now.Add(-time.Minute), Contact: "+1 (555) 0124",
				CurrentTask: "Managing crowd surge",
				Skills:      []string{"Crowd Control", "Communication"},
			},
			{
				ID: "3", Name: "Emma Davis", Role: "Medical Response", Zone: "Zone C",
				Status: types.ResponderAvailable, Location: "Exhibition Hall",
				LastUpdate: now.Add(-30 * time.Second), Contact: "+1 (555) 0125",
				Skills: []string{"First Aid", "Medical Emergency", "Evacuation"},
			},
			{
				ID: "4", Name: "James Wilson", Role: "Security Officer", Zone: "Zone D",
				Status: types.ResponderEmergency, Location: "Parking Area",
				LastUpdate: now.Add(-5 * time.Minute), Contact: "+1 (555) 0126",
				CurrentTask: "Investigating security incident",
				Skills:      []string{"Security", "Investigation", "Patrol"},
			},
			{
				ID: "5", Name: "Lisa Rodriguez", Role: "Maintenance", Zone: "Zone E",
				Status: types.ResponderOffline, Location: "Emergency Exit",
				LastUpdate: now.Add(-15 * time.Minute), Contact: "+1 (555) 0127",
				Skills: []string{"Technical Support", "Equipment Repair"},
			},
		},
	}
}

// List returns a copy of the roster, optionally filtered by zone
// ("" means all zones).
func (d *ResponderDirectory) List(zone string) []types.Responder {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]types.Responder, 0, len(d.responders))
	for _, r := range d.responders {
		if zone == "" || r.Zone == zone {
			out = append(out, *r)
		}
	}
	return out
}

// Touch applies fn to every responder under the write lock. The availability
// simulation uses it to nudge statuses and refresh LastUpdate.
func (d *ResponderDirectory) Touch(fn func(*types.Responder)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.responders {
		fn(r)
	}
}
