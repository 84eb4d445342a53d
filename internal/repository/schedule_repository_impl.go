package repository

import (
	"context"
	"errors"
	"time"

	"clinicflow/internal/domain/entity"
	domainRepo "clinicflow/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) FindByDoctorAndWeekday(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) (*entity.WeeklySchedule, error) {
	var schedule entity.WeeklySchedule
	err := db.WithContext(ctx).
		Preload("Windows").
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) FindByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklySchedule, error) {
	var schedules []entity.WeeklySchedule
	err := db.WithContext(ctx).
		Preload("Windows").
		Where("doctor_id = ?", doctorID).
		Order("weekday ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// UpsertWeekday relies on ON CONFLICT DO NOTHING against the (doctor,
// weekday) unique index instead of check-then-create, so concurrent saves
// for the same weekday converge on one row.
func (r *scheduleRepository) UpsertWeekday(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, weekday time.Weekday) (*entity.WeeklySchedule, error) {
	schedule := entity.WeeklySchedule{DoctorID: doctorID, Weekday: weekday}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "weekday"}},
			DoNothing: true,
		}).
		Create(&schedule).Error
	if err != nil {
		return nil, err
	}

	// DO NOTHING does not return the surviving row; reload to get its id
	// whether this call created it or lost the race.
	var existing entity.WeeklySchedule
	err = db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *scheduleRepository) GetOrCreateWindow(ctx context.Context, db *gorm.DB, start, end string, slotsPerHour int) (*entity.AvailabilityWindow, error) {
	window := entity.AvailabilityWindow{
		StartTime:    start,
		EndTime:      end,
		SlotsPerHour: slotsPerHour,
		IsActive:     true,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "start_time"}, {Name: "end_time"}},
			DoNothing: true,
		}).
		Create(&window).Error
	if err != nil {
		return nil, err
	}

	var existing entity.AvailabilityWindow
	err = db.WithContext(ctx).
		Where("start_time = ? AND end_time = ?", start, end).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *scheduleRepository) AttachWindow(ctx context.Context, db *gorm.DB, scheduleID, windowID int) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO schedule_windows (weekly_schedule_id, availability_window_id)
		 VALUES (?, ?) ON CONFLICT DO NOTHING`,
		scheduleID, windowID,
	).Error
}

func (r *scheduleRepository) SetWindowActive(ctx context.Context, db *gorm.DB, windowID int, active bool) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.AvailabilityWindow{}).
		Where("id = ?", windowID).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}
