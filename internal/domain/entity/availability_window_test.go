package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotDuration(t *testing.T) {
	tests := []struct {
		name         string
		slotsPerHour int
		want         int
	}{
		{name: "unset falls back to default", slotsPerHour: 0, want: 30},
		{name: "negative falls back to default", slotsPerHour: -3, want: 30},
		{name: "one slot per hour", slotsPerHour: 1, want: 60},
		{name: "two slots per hour", slotsPerHour: 2, want: 30},
		{name: "three slots per hour", slotsPerHour: 3, want: 20},
		{name: "four slots per hour", slotsPerHour: 4, want: 15},
		{name: "five slots per hour", slotsPerHour: 5, want: 12},
		{name: "six slots per hour", slotsPerHour: 6, want: 10},
		{name: "seven slots per hour floors division", slotsPerHour: 7, want: 8},
		{name: "eight slots per hour", slotsPerHour: 8, want: 7},
		{name: "eleven slots per hour hits minimum", slotsPerHour: 11, want: 5},
		{name: "twelve slots per hour", slotsPerHour: 12, want: 5},
		{name: "above maximum clamps to twelve", slotsPerHour: 60, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &AvailabilityWindow{SlotsPerHour: tt.slotsPerHour}
			assert.Equal(t, tt.want, w.SlotDuration())
		})
	}
}

func TestBookingTerminalStates(t *testing.T) {
	for _, status := range NonTerminalStatuses() {
		b := &Booking{Status: status}
		assert.False(t, b.IsTerminal(), "status %s", status)
	}

	for _, status := range []BookingStatus{BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow} {
		b := &Booking{Status: status}
		assert.True(t, b.IsTerminal(), "status %s", status)
	}
}

func TestActiveWindows(t *testing.T) {
	var missing *WeeklySchedule
	assert.Empty(t, missing.ActiveWindows())

	s := &WeeklySchedule{Windows: []AvailabilityWindow{
		{ID: 1, IsActive: true},
		{ID: 2, IsActive: false},
		{ID: 3, IsActive: true},
	}}
	active := s.ActiveWindows()
	assert.Len(t, active, 2)
	assert.Equal(t, 1, active[0].ID)
	assert.Equal(t, 3, active[1].ID)
}
