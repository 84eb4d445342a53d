package usecase

import (
	"context"
	"time"

	"clinicflow/internal/domain/entity"
	"clinicflow/internal/domain/repository"
	"clinicflow/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// loadActiveWindows returns the doctor's active availability windows for the
// given weekday, reading through the schedule cache. A doctor without a
// schedule row for the weekday yields an empty slice.
func loadActiveWindows(ctx context.Context, db *gorm.DB, scheduleRepo repository.ScheduleRepository, cache service.ScheduleCache, doctorID uuid.UUID, weekday time.Weekday) ([]entity.AvailabilityWindow, error) {
	if windows, ok := cache.GetWindows(ctx, doctorID, weekday); ok {
		return windows, nil
	}

	schedule, err := scheduleRepo.FindByDoctorAndWeekday(ctx, db, doctorID, weekday)
	if err != nil {
		return nil, err
	}

	windows := schedule.ActiveWindows()
	cache.SetWindows(ctx, doctorID, weekday, windows)
	return windows, nil
}
