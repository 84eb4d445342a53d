package entity

import "time"

// Slot duration bounds. A doctor configures how many appointments fit in an
// hour; the duration derived from it is floor-bounded so bad historical data
// can never produce unusable slots.
const (
	MinSlotsPerHour    = 1
	MaxSlotsPerHour    = 12
	MinSlotDuration    = 5  // minutes
	DefaultSlotMinutes = 30 // used when slots_per_hour is unset or invalid
)

// AvailabilityWindow is one contiguous block of bookable hours on a weekday.
// Windows are identified by their (start, end) pair and shared between
// doctors whose hours coincide; only is_active may change after creation.
type AvailabilityWindow struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime    string    `gorm:"type:time;not null;uniqueIndex:idx_availability_windows_start_end" json:"start_time"`
	EndTime      string    `gorm:"type:time;not null;uniqueIndex:idx_availability_windows_start_end" json:"end_time"`
	SlotsPerHour int       `gorm:"not null;default:4" json:"slots_per_hour"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}

// SlotDuration returns the appointment length in minutes derived from
// SlotsPerHour. Invalid values fall back to 30 minutes; otherwise the value
// is clamped to 1..12 slots per hour and the integer division result is
// floor-bounded to 5 minutes.
func (w *AvailabilityWindow) SlotDuration() int {
	if w.SlotsPerHour <= 0 {
		return DefaultSlotMinutes
	}

	slots := w.SlotsPerHour
	if slots < MinSlotsPerHour {
		slots = MinSlotsPerHour
	}
	if slots > MaxSlotsPerHour {
		slots = MaxSlotsPerHour
	}

	duration := 60 / slots
	if duration < MinSlotDuration {
		return MinSlotDuration
	}
	return duration
}
