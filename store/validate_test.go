package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetysight/types"
)

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	assert.Equal(t, field, verr.Field)
}

func TestValidateIncident(t *testing.T) {
	ok := &types.IncidentReport{Title: "t", Description: "d", ReportedBy: "r"}
	assert.NoError(t, ValidateIncident(ok))

	requireFieldError(t, ValidateIncident(&types.IncidentReport{Description: "d", ReportedBy: "r"}), "title")
	requireFieldError(t, ValidateIncident(&types.IncidentReport{Title: "t", ReportedBy: "r"}), "description")
	requireFieldError(t, ValidateIncident(&types.IncidentReport{Title: "t", Description: "d"}), "reportedBy")
}

func TestValidateMissingPerson(t *testing.T) {
	ok := &types.MissingPersonReport{FullName: "n", LastLocation: "l", Contact: "c"}
	assert.NoError(t, ValidateMissingPerson(ok))

	requireFieldError(t, ValidateMissingPerson(&types.MissingPersonReport{LastLocation: "l", Contact: "c"}), "fullName")
	requireFieldError(t, ValidateMissingPerson(&types.MissingPersonReport{FullName: "n", Contact: "c"}), "lastLocation")
	requireFieldError(t, ValidateMissingPerson(&types.MissingPersonReport{FullName: "n", LastLocation: "l"}), "contact")
}

func TestValidateLostFoundType(t *testing.T) {
	ok := &types.LostFoundItem{Type: "found", Description: "d", ContactName: "c"}
	assert.NoError(t, ValidateLostFound(ok))

	bad := &types.LostFoundItem{Type: "stolen", Description: "d", ContactName: "c"}
	requireFieldError(t, ValidateLostFound(bad), "type")

	empty := &types.LostFoundItem{Description: "d", ContactName: "c"}
	requireFieldError(t, ValidateLostFound(empty), "type")
}

func TestValidateTask(t *testing.T) {
	ok := &types.Task{Title: "t", Description: "d", Zone: "Zone A"}
	assert.NoError(t, ValidateTask(ok))

	requireFieldError(t, ValidateTask(&types.Task{Description: "d", Zone: "Zone A"}), "title")
	requireFieldError(t, ValidateTask(&types.Task{Title: "t", Description: "d"}), "zone")
}

func TestValidateAlert(t *testing.T) {
	ok := &types.Alert{Title: "t", Description: "d", Zone: "Zone A"}
	assert.NoError(t, ValidateAlert(ok))

	requireFieldError(t, ValidateAlert(&types.Alert{Description: "d", Zone: "Zone A"}), "title")
	requireFieldError(t, ValidateAlert(&types.Alert{Title: "t", Description: "d"}), "zone")
}

func TestResponderDirectory(t *testing.T) {
	d := NewResponderDirectory()

	all := d.List("")
	require.Len(t, all, 5)

	zoneA := d.List("Zone A")
	require.Len(t, zoneA, 1)
	assert.Equal(t, "Sarah Johnson", zoneA[0].Name)

	// List hands out copies; mutating them must not touch the roster.
	zoneA[0].Status = "mutated"
	again := d.List("Zone A")
	assert.NotEqual(t, "mutated", again[0].Status)

	d.Touch(func(r *types.Responder) { r.Status = types.ResponderBusy })
	for _, r := range d.List("") {
		assert.Equal(t, types.ResponderBusy, r.Status)
	}
}
