package store

import "safetysight/types"

// Per-entity required-field checks, run by Create before any network write.
// A failing check blocks submission locally; nothing reaches the backend.

func ValidateIncident(r *types.IncidentReport) error {
	switch {
	case r.Title == "":
		return Required("incident-report", "title")
	case r.Description == "":
		return Required("incident-report", "description")
	case r.ReportedBy == "":
		return Required("incident-report", "reportedBy")
	}
	return nil
}

func ValidateMissingPerson(r *types.MissingPersonReport) error {
	switch {
	case r.FullName == "":
		return Required("missing-person", "fullName")
	case r.LastLocation == "":
		return Required("missing-person", "lastLocation")
	case r.Contact == "":
		return Required("missing-person", "contact")
	}
	return nil
}

func ValidateLostFound(i *types.LostFoundItem) error {
	switch {
	case i.Type != "lost" && i.Type != "found":
		return &ValidationError{Entity: "lost-found-item", Field: "type", Reason: `must be "lost" or "found"`}
	case i.Description == "":
		return Required("lost-found-item", "description")
	case i.ContactName == "":
		return Required("lost-found-item", "contactName")
	}
	return nil
}

func ValidateTask(t *types.Task) error {
	switch {
	case t.Title == "":
		return Required("task", "title")
	case t.Description == "":
		return Required("task", "description")
	case t.Zone == "":
		return Required("task", "zone")
	}
	return nil
}

func ValidateAlert(a *types.Alert) error {
	switch {
	case a.Title == "":
		return Required("alert", "title")
	case a.Description == "":
		return Required("alert", "description")
	case a.Zone == "":
		return Required("alert", "zone")
	}
	return nil
}
