package appointments

import "time"

// AgendaStats summarizes a professional's agenda.
type AgendaStats struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Total int `json:"total"`
}

// ComputeAgendaStats counts appointments on now's calendar day, those not yet
// past within [start of today, now+7d], and the total. Days are evaluated in
// loc.
func ComputeAgendaStats(appts []Appointment, now time.Time, loc *time.Location) AgendaStats {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	endOfDay := startOfDay.AddDate(0, 0, 1)
	weekEnd := now.AddDate(0, 0, 7)

	stats := AgendaStats{Total: len(appts)}
	for _, a := range appts {
		at := a.ScheduledAt
		if !at.Before(startOfDay) && at.Before(endOfDay) {
			stats.Today++
		}
		if !at.Before(now) && !at.After(weekEnd) {
			stats.Week++
		}
	}
	return stats
}

// CountInMonth counts appointments in now's calendar month, evaluated in loc.
func CountInMonth(appts []Appointment, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	n := 0
	for _, a := range appts {
		if !a.ScheduledAt.Before(start) && a.ScheduledAt.Before(end) {
			n++
		}
	}
	return n
}

// CountByStatus tallies appointments per status. Known statuses are always
// present, even at zero.
func CountByStatus(appts []Appointment) map[Status]int {
	counts := map[Status]int{
		StatusPending:   0,
		StatusConfirmed: 0,
		StatusCompleted: 0,
		StatusCanceled:  0,
	}
	for _, a := range appts {
		counts[a.Status]++
	}
	return counts
}
