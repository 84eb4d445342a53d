package repository

import (
	"context"
	"time"

	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	// FindByDoctorAndWeekday loads the doctor's schedule row for one
	// weekday with its windows preloaded. Returns nil when the doctor has
	// never saved hours for that weekday.
	FindByDoctorAndWeekday(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) (*entity.WeeklySchedule, error)
	// FindByDoctor loads all of the doctor's weekday rows with windows.
	FindByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklySchedule, error)
	// UpsertWeekday creates the (doctor, weekday) row if absent and returns
	// it. Concurrent saves for the same pair converge on a single row.
	UpsertWeekday(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) (*entity.WeeklySchedule, error)
	// GetOrCreateWindow resolves a window by its (start, end) identity,
	// creating it when absent. slotsPerHour only applies to a new window;
	// an existing window keeps its configuration.
	GetOrCreateWindow(ctx context.Context, db *gorm.DB, start, end string, slotsPerHour int) (*entity.AvailabilityWindow, error)
	// AttachWindow links a window to a weekday row; attaching an already
	// linked window is a no-op.
	AttachWindow(ctx context.Context, db *gorm.DB, scheduleID, windowID int) error
	SetWindowActive(ctx context.Context, db *gorm.DB, windowID int, active bool) (int64, error)
}
