package usecase

import (
	"fmt"
	"time"
)

// Time-of-day values travel through the system as "HH:MM" strings (database
// time columns, request payloads, slot descriptors). All slot arithmetic is
// done in minutes since midnight.

// minutesOfDay parses "HH:MM" (a trailing ":SS" from the database is
// tolerated and ignored) into minutes since midnight.
func minutesOfDay(clock string) (int, error) {
	if len(clock) > 5 {
		clock = clock[:5]
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatMinutes renders minutes since midnight as "HH:MM".
func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// slotLabel renders minutes since midnight in 12-hour display form,
// e.g. "09:15 AM".
func slotLabel(minutes int) string {
	t := time.Date(0, time.January, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("03:04 PM")
}

// sameDate reports whether two instants fall on the same calendar day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
