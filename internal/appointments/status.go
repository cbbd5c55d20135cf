// Package appointments models a booking's status and derives the filtered,
// partitioned and sorted views the portal renders. Everything here is pure:
// no I/O, no shared state, and no function returns an error.
package appointments

import "strings"

// Status is the lifecycle state of an appointment. Values outside the four
// known states are kept verbatim so they can still be displayed.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"

	// StatusAll is the filter wildcard accepted by FilterByStatus.
	StatusAll Status = "ALL"
)

var statusAliases = map[string]Status{
	"PENDING":    StatusPending,
	"PENDIENTE":  StatusPending,
	"CONFIRMED":  StatusConfirmed,
	"CONFIRMADA": StatusConfirmed,
	"COMPLETED":  StatusCompleted,
	"COMPLETADA": StatusCompleted,
	"CANCELED":   StatusCanceled,
	"CANCELLED":  StatusCanceled,
	"CANCELADA":  StatusCanceled,
	"ALL":        StatusAll,
	"TODAS":      StatusAll,
}

// ParseStatus maps English and backend (Spanish) labels to a Status.
// Unrecognized input is returned as-is, upper-cased.
func ParseStatus(s string) Status {
	key := strings.ToUpper(strings.TrimSpace(s))
	if st, ok := statusAliases[key]; ok {
		return st
	}
	return Status(key)
}

// Known reports whether s is one of the four lifecycle states.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further end-user action applies.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// BackendValue is the label the scheduling backend uses on the wire.
func (s Status) BackendValue() string {
	switch s {
	case StatusPending:
		return "PENDIENTE"
	case StatusConfirmed:
		return "CONFIRMADA"
	case StatusCompleted:
		return "COMPLETADA"
	case StatusCanceled:
		return "CANCELADA"
	}
	return string(s)
}

// BadgeStyle is a presentation-neutral token a renderer maps to colors.
type BadgeStyle string

const (
	BadgeWarning BadgeStyle = "warning"
	BadgeInfo    BadgeStyle = "info"
	BadgeSuccess BadgeStyle = "success"
	BadgeMuted   BadgeStyle = "muted"
)

var statusLabels = map[Status]string{
	StatusPending:   "Pendiente",
	StatusConfirmed: "Confirmada",
	StatusCompleted: "Completada",
	StatusCanceled:  "Cancelada",
}

var statusBadges = map[Status]BadgeStyle{
	StatusPending:   BadgeWarning,
	StatusConfirmed: BadgeInfo,
	StatusCompleted: BadgeSuccess,
	StatusCanceled:  BadgeMuted,
}

// StatusLabel returns the human-readable label, or the raw value for an
// unknown status.
func StatusLabel(s Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// StatusBadgeStyle returns the badge token, or the raw value for an unknown
// status.
func StatusBadgeStyle(s Status) BadgeStyle {
	if style, ok := statusBadges[s]; ok {
		return style
	}
	return BadgeStyle(s)
}
