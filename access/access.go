// Package access is the role-scoped view model: given an identity it decides
// which dashboard views are navigable and which entity mutations are allowed.
// Everything here is a pure function of (role, zone); no I/O, no entity data.
package access

import (
	"strings"

	"safetysight/types"
)

// ViewID identifies a navigable dashboard view.
type ViewID string

const (
	ViewHome        ViewID = "home"
	ViewHeatmap     ViewID = "heatmap"
	ViewPredictions ViewID = "predictions"
	ViewSummaries   ViewID = "summaries"
	ViewTasks       ViewID = "tasks"
	ViewResponders  ViewID = "responders"
	ViewEvents      ViewID = "events"
	ViewAlerts      ViewID = "alerts"
	ViewReport      ViewID = "report"
	ViewLostFound   ViewID = "lost-found"
)

// commonViews is the subset every role (including unknown roles) can reach.
var commonViews = []ViewID{ViewHome, ViewHeatmap, ViewPredictions, ViewSummaries}

var roleViews = map[types.Role][]ViewID{
	types.RoleAdmin:     {ViewTasks, ViewResponders, ViewEvents},
	types.RoleResponder: {ViewTasks, ViewAlerts},
	types.RoleUser:      {ViewReport, ViewAlerts, ViewLostFound},
}

// VisibleViews returns the ordered navigation for a role: the common set
// followed by the role-specific views. An unknown role falls back to the
// common set alone.
func VisibleViews(role types.Role) []ViewID {
	views := make([]ViewID, 0, len(commonViews)+3)
	views = append(views, commonViews...)
	views = append(views, roleViews[role]...)
	return views
}

// Entity names the five mutable domains for permission checks.
type Entity string

const (
	EntityIncident      Entity = "incident"
	EntityMissingPerson Entity = "missing-person"
	EntityLostFound     Entity = "lost-found"
	EntityTask          Entity = "task"
	EntityAlert         Entity = "alert"
)

// Action is a mutation kind on an entity store.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdateStatus Action = "update-status"
)

// mutations is the fixed permission table. Absent combinations are denied.
var mutations = map[Entity]map[Action][]types.Role{
	EntityIncident: {
		ActionCreate:       {types.RoleAdmin, types.RoleResponder, types.RoleUser},
		ActionUpdateStatus: {types.RoleAdmin, types.RoleResponder},
	},
	EntityMissingPerson: {
		ActionCreate:       {types.RoleAdmin, types.RoleResponder, types.RoleUser},
		ActionUpdateStatus: {types.RoleAdmin, types.RoleResponder},
	},
	EntityLostFound: {
		ActionCreate:       {types.RoleAdmin, types.RoleResponder, types.RoleUser},
		ActionUpdateStatus: {types.RoleAdmin},
	},
	EntityTask: {
		ActionCreate:       {types.RoleAdmin},
		ActionUpdateStatus: {types.RoleAdmin, types.RoleResponder},
	},
	EntityAlert: {
		ActionCreate:       {types.RoleAdmin, types.RoleResponder},
		ActionUpdateStatus: {types.RoleAdmin, types.RoleResponder},
	},
}

// CanMutate reports whether role may perform action on entity.
func CanMutate(role types.Role, entity Entity, action Action) bool {
	for _, allowed := range mutations[entity][action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// TaskVisible decides task visibility. Admins see every task. A responder
// sees tasks whose zone string-equals their own zone, or that are assigned to
// them by name; a responder with no zone set therefore sees no zone-scoped
// tasks at all. Plain users see none.
func TaskVisible(ident *types.Identity, task *types.Task) bool {
	switch ident.Role {
	case types.RoleAdmin:
		return true
	case types.RoleResponder:
		if task.Zone == ident.Zone && ident.Zone != "" {
			return true
		}
		return ident.Name != "" && strings.Contains(task.AssignedTo, ident.Name)
	default:
		return false
	}
}

// IncidentVisible decides incident-report visibility: admins see every
// report, everyone else only their own. Matching is by reporter display
// name, the same weak string identity the records store.
func IncidentVisible(ident *types.Identity, rep *types.IncidentReport) bool {
	if ident.Role == types.RoleAdmin {
		return true
	}
	return rep.ReportedBy == ident.Name
}

// AlertVisible decides alert visibility: responders see alerts for their own
// zone only, admins and users see all of them.
func AlertVisible(ident *types.Identity, alert *types.Alert) bool {
	if ident.Role == types.RoleResponder {
		return alert.Zone == ident.Zone
	}
	return true
}
