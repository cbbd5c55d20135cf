package appointments

import (
	"time"

	"github.com/wolfman30/wellness-portal/internal/directory"
)

// Action is a status-changing request the portal may forward to the backend.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionDelete   Action = "delete"
)

// ParseAction accepts English and backend verbs. ok is false for anything else.
func ParseAction(s string) (Action, bool) {
	switch s {
	case "confirm", "confirmar":
		return ActionConfirm, true
	case "cancel", "cancelar":
		return ActionCancel, true
	case "complete", "completar":
		return ActionComplete, true
	case "delete", "eliminar":
		return ActionDelete, true
	}
	return "", false
}

// transitions lists the states each one-way action may start from.
var transitions = map[Action][]Status{
	ActionConfirm:  {StatusPending},
	ActionCancel:   {StatusPending, StatusConfirmed},
	ActionComplete: {StatusPending, StatusConfirmed},
}

// Target is the status an action leads to. Delete has none.
func (a Action) Target() (Status, bool) {
	switch a {
	case ActionConfirm:
		return StatusConfirmed, true
	case ActionCancel:
		return StatusCanceled, true
	case ActionComplete:
		return StatusCompleted, true
	}
	return "", false
}

// CanApply reports whether action may be requested from status. This is a
// local pre-check only; the backend stays authoritative. Delete is always
// allowed here and gated by role instead.
func CanApply(action Action, from Status) bool {
	if action == ActionDelete {
		return true
	}
	for _, s := range transitions[action] {
		if s == from {
			return true
		}
	}
	return false
}

// IsCancelable is true iff the status is PENDING or CONFIRMED and the
// appointment is scheduled strictly after now.
func IsCancelable(a Appointment, now time.Time) bool {
	return (a.Status == StatusPending || a.Status == StatusConfirmed) && a.ScheduledAt.After(now)
}

// AvailableActions lists the actions to offer for a, given the viewer's roles.
// Cancel follows IsCancelable; confirm and complete need a professional or
// admin; delete needs an admin.
func AvailableActions(a Appointment, now time.Time, roles []directory.Role) []Action {
	var out []Action
	staff := directory.HasAnyRole(roles, directory.RoleProfessional, directory.RoleAdmin)
	if staff && CanApply(ActionConfirm, a.Status) {
		out = append(out, ActionConfirm)
	}
	if staff && CanApply(ActionComplete, a.Status) {
		out = append(out, ActionComplete)
	}
	if IsCancelable(a, now) {
		out = append(out, ActionCancel)
	}
	if directory.HasRole(roles, directory.RoleAdmin) {
		out = append(out, ActionDelete)
	}
	return out
}
