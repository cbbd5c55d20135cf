package appointments

import (
	"sort"
	"strings"
	"time"
)

// PartitionByTime splits appts into upcoming (strictly after now) and past
// (at or before now). Every input lands in exactly one output and relative
// order is preserved in both.
func PartitionByTime(appts []Appointment, now time.Time) (upcoming, past []Appointment) {
	upcoming = make([]Appointment, 0, len(appts))
	past = make([]Appointment, 0, len(appts))
	for _, a := range appts {
		if a.IsUpcoming(now) {
			upcoming = append(upcoming, a)
		} else {
			past = append(past, a)
		}
	}
	return upcoming, past
}

// FilterByStatus keeps appointments whose status equals status, in input
// order. StatusAll returns a copy of the whole input.
func FilterByStatus(appts []Appointment, status Status) []Appointment {
	out := make([]Appointment, 0, len(appts))
	for _, a := range appts {
		if status == StatusAll || a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// UpcomingActionable returns appointments that are upcoming and still PENDING
// or CONFIRMED.
func UpcomingActionable(appts []Appointment, now time.Time) []Appointment {
	upcoming, _ := PartitionByTime(appts, now)
	out := make([]Appointment, 0, len(upcoming))
	for _, a := range upcoming {
		if a.Status == StatusPending || a.Status == StatusConfirmed {
			out = append(out, a)
		}
	}
	return out
}

// Agenda returns a copy sorted soonest first. Ties keep input order.
func Agenda(appts []Appointment) []Appointment {
	out := append([]Appointment(nil), appts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out
}

// History returns a copy sorted most recent first. Ties keep input order.
func History(appts []Appointment) []Appointment {
	out := append([]Appointment(nil), appts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledAt.After(out[j].ScheduledAt)
	})
	return out
}

// ViewFilter names the tabs of a "my appointments" view.
type ViewFilter string

const (
	FilterAll       ViewFilter = "all"
	FilterUpcoming  ViewFilter = "upcoming"
	FilterPast      ViewFilter = "past"
	FilterPending   ViewFilter = "pending"
	FilterConfirmed ViewFilter = "confirmed"
	FilterCompleted ViewFilter = "completed"
	FilterCanceled  ViewFilter = "canceled"
)

var viewFilterAliases = map[string]ViewFilter{
	"all":         FilterAll,
	"todas":       FilterAll,
	"upcoming":    FilterUpcoming,
	"proximas":    FilterUpcoming,
	"past":        FilterPast,
	"pasadas":     FilterPast,
	"pending":     FilterPending,
	"pendientes":  FilterPending,
	"confirmed":   FilterConfirmed,
	"confirmadas": FilterConfirmed,
	"completed":   FilterCompleted,
	"completadas": FilterCompleted,
	"canceled":    FilterCanceled,
	"cancelled":   FilterCanceled,
	"canceladas":  FilterCanceled,
}

// ParseViewFilter resolves a filter name. Unknown names mean FilterAll.
func ParseViewFilter(s string) ViewFilter {
	if f, ok := viewFilterAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f
	}
	return FilterAll
}

// ApplyViewFilter narrows appts for the named tab, preserving order.
func ApplyViewFilter(appts []Appointment, f ViewFilter, now time.Time) []Appointment {
	switch f {
	case FilterUpcoming:
		return UpcomingActionable(appts, now)
	case FilterPast:
		_, past := PartitionByTime(appts, now)
		return past
	case FilterPending:
		return FilterByStatus(appts, StatusPending)
	case FilterConfirmed:
		return FilterByStatus(appts, StatusConfirmed)
	case FilterCompleted:
		return FilterByStatus(appts, StatusCompleted)
	case FilterCanceled:
		return FilterByStatus(appts, StatusCanceled)
	default:
		return FilterByStatus(appts, StatusAll)
	}
}
