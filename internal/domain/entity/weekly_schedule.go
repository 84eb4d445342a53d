package entity

import (
	"time"

	"github.com/google/uuid"
)

// WeeklySchedule holds a doctor's availability windows for one weekday.
// One row per (doctor, weekday), created lazily the first time a doctor
// saves hours for that day; a missing row means the doctor is unavailable
// on that weekday. Weekday follows time.Weekday (Sunday = 0).
type WeeklySchedule struct {
	ID        int          `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_schedules_doctor_weekday" json:"doctor_id"`
	Weekday   time.Weekday `gorm:"type:smallint;not null;uniqueIndex:idx_weekly_schedules_doctor_weekday" json:"weekday"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  User                 `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Windows []AvailabilityWindow `gorm:"many2many:schedule_windows" json:"windows,omitempty"`
}

func (WeeklySchedule) TableName() string {
	return "weekly_schedules"
}

// ActiveWindows filters the attached windows down to the bookable ones.
// Callers must treat an empty result the same as a missing schedule row.
func (s *WeeklySchedule) ActiveWindows() []AvailabilityWindow {
	if s == nil {
		return nil
	}
	active := make([]AvailabilityWindow, 0, len(s.Windows))
	for _, w := range s.Windows {
		if w.IsActive {
			active = append(active, w)
		}
	}
	return active
}
