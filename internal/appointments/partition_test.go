package appointments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(appts []Appointment) []int64 {
	out := make([]int64, 0, len(appts))
	for _, a := range appts {
		out = append(out, a.ID)
	}
	return out
}

func scenario(now time.Time) []Appointment {
	return []Appointment{
		{ID: 1, ScheduledAt: now.Add(time.Hour), Status: StatusPending},
		{ID: 2, ScheduledAt: now.Add(-time.Hour), Status: StatusCompleted},
		{ID: 3, ScheduledAt: now.Add(2 * time.Hour), Status: StatusConfirmed},
	}
}

func TestEndToEndScenario(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	appts := scenario(now)

	upcoming, past := PartitionByTime(appts, now)
	assert.Equal(t, []int64{1, 3}, ids(upcoming))
	assert.Equal(t, []int64{2}, ids(past))
	assert.Equal(t, []int64{1, 3}, ids(UpcomingActionable(appts, now)))
	assert.Equal(t, []int64{1, 3}, ids(Agenda(upcoming)))
}

func TestPartitionTotality(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	appts := []Appointment{
		{ID: 1, ScheduledAt: now},
		{ID: 2, ScheduledAt: now.Add(time.Nanosecond)},
		{ID: 3, ScheduledAt: now.Add(-time.Nanosecond)},
		{ID: 4, ScheduledAt: now.Add(48 * time.Hour)},
		{ID: 5, ScheduledAt: time.Time{}},
	}

	upcoming, past := PartitionByTime(appts, now)
	require.Equal(t, len(appts), len(upcoming)+len(past))
	assert.Equal(t, []int64{2, 4}, ids(upcoming))
	assert.Equal(t, []int64{1, 3, 5}, ids(past))

	seen := map[int64]int{}
	for _, a := range append(upcoming, past...) {
		seen[a.ID]++
	}
	for _, a := range appts {
		assert.Equal(t, 1, seen[a.ID], "appointment %d", a.ID)
	}
}

func TestFilterByStatusStable(t *testing.T) {
	appts := []Appointment{
		{ID: 5, Status: StatusPending},
		{ID: 1, Status: StatusCanceled},
		{ID: 4, Status: StatusPending},
		{ID: 2, Status: StatusConfirmed},
		{ID: 3, Status: StatusPending},
	}
	assert.Equal(t, []int64{5, 4, 3}, ids(FilterByStatus(appts, StatusPending)))
	assert.Equal(t, []int64{5, 1, 4, 2, 3}, ids(FilterByStatus(appts, StatusAll)))
	assert.Empty(t, FilterByStatus(appts, StatusCompleted))
}

func TestSortConventions(t *testing.T) {
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	appts := []Appointment{
		{ID: 1, ScheduledAt: base.Add(2 * time.Hour)},
		{ID: 2, ScheduledAt: base},
		{ID: 3, ScheduledAt: base.Add(2 * time.Hour)},
		{ID: 4, ScheduledAt: base.Add(time.Hour)},
	}

	assert.Equal(t, []int64{2, 4, 1, 3}, ids(Agenda(appts)))
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(History(appts)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(appts), "input must not be reordered")
}

func TestEmptyInput(t *testing.T) {
	now := time.Now()
	upcoming, past := PartitionByTime(nil, now)
	assert.Empty(t, upcoming)
	assert.Empty(t, past)
	assert.Empty(t, FilterByStatus(nil, StatusPending))
	assert.Empty(t, FilterByStatus([]Appointment{}, StatusAll))
	assert.Empty(t, UpcomingActionable(nil, now))
	assert.Empty(t, Agenda(nil))
	assert.Empty(t, History(nil))
	assert.Empty(t, ApplyViewFilter(nil, FilterPast, now))
	assert.Equal(t, AgendaStats{}, ComputeAgendaStats(nil, now, time.UTC))
	assert.Zero(t, CountInMonth(nil, now, nil))
}

func TestApplyViewFilter(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	appts := append(scenario(now),
		Appointment{ID: 4, ScheduledAt: now.Add(3 * time.Hour), Status: StatusCanceled},
		Appointment{ID: 5, ScheduledAt: now.Add(-3 * time.Hour), Status: StatusPending},
	)

	tests := []struct {
		filter string
		want   []int64
	}{
		{"todas", []int64{1, 2, 3, 4, 5}},
		{"proximas", []int64{1, 3}},
		{"past", []int64{2, 5}},
		{"pendientes", []int64{1, 5}},
		{"confirmed", []int64{3}},
		{"completadas", []int64{2}},
		{"canceled", []int64{4}},
		{"whatever", []int64{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got := ApplyViewFilter(appts, ParseViewFilter(tt.filter), now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
