package usecase

import (
	"context"
	"errors"
	"time"

	"clinicflow/internal/converter"
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/repository"
	"clinicflow/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrWindowNotFound   = errors.New("availability window not found")
)

type DoctorScheduleUsecase interface {
	// SaveWeekdayHours adds availability windows to one weekday of the
	// doctor's schedule. Existing windows on the weekday are kept.
	SaveWeekdayHours(ctx context.Context, doctorID uuid.UUID, request *dto.SaveWeekdayHoursRequest) (*dto.WeekdayScheduleResponse, error)
	GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID) (*dto.WeeklyScheduleResponse, error)
	// SetWindowActive toggles a window on or off. Windows are shared
	// between doctors with identical hours, so the toggle is global.
	SetWindowActive(ctx context.Context, doctorID uuid.UUID, windowID int, active bool) error
}

type doctorScheduleUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	scheduleRepo  repository.ScheduleRepository
	scheduleCache service.ScheduleCache
	transact      func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewDoctorScheduleUsecase(db *gorm.DB, log *logrus.Logger, scheduleRepo repository.ScheduleRepository, scheduleCache service.ScheduleCache) DoctorScheduleUsecase {
	u := &doctorScheduleUsecase{
		db:            db,
		log:           log,
		scheduleRepo:  scheduleRepo,
		scheduleCache: scheduleCache,
	}
	u.transact = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return u.db.WithContext(ctx).Transaction(fn)
	}
	return u
}

func (u *doctorScheduleUsecase) SaveWeekdayHours(ctx context.Context, doctorID uuid.UUID, request *dto.SaveWeekdayHoursRequest) (*dto.WeekdayScheduleResponse, error) {
	weekday := time.Weekday(request.Weekday)

	// Validate every range up front so a bad one rejects the whole save.
	normalized := make([]dto.TimeRangeRequest, 0, len(request.Ranges))
	for _, r := range request.Ranges {
		startMin, err := minutesOfDay(r.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeRange
		}
		endMin, err := minutesOfDay(r.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeRange
		}
		if startMin >= endMin {
			return nil, ErrInvalidTimeRange
		}
		normalized = append(normalized, dto.TimeRangeRequest{
			StartTime:    formatMinutes(startMin),
			EndTime:      formatMinutes(endMin),
			SlotsPerHour: r.SlotsPerHour,
		})
	}

	err := u.transact(ctx, func(tx *gorm.DB) error {
		schedule, err := u.scheduleRepo.UpsertWeekday(ctx, tx, doctorID, weekday)
		if err != nil {
			return err
		}
		for _, r := range normalized {
			window, err := u.scheduleRepo.GetOrCreateWindow(ctx, tx, r.StartTime, r.EndTime, r.SlotsPerHour)
			if err != nil {
				return err
			}
			if err := u.scheduleRepo.AttachWindow(ctx, tx, schedule.ID, window.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		u.log.WithError(err).Error("failed to save weekday hours")
		return nil, err
	}

	u.scheduleCache.Invalidate(ctx, doctorID, weekday)

	schedule, err := u.scheduleRepo.FindByDoctorAndWeekday(ctx, u.db, doctorID, weekday)
	if err != nil {
		u.log.WithError(err).Error("failed to reload weekday schedule")
		return nil, err
	}

	response := converter.ScheduleToWeekdayResponse(schedule)
	return &response, nil
}

func (u *doctorScheduleUsecase) GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID) (*dto.WeeklyScheduleResponse, error) {
	schedules, err := u.scheduleRepo.FindByDoctor(ctx, u.db, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to load weekly schedule")
		return nil, err
	}
	return converter.SchedulesToWeeklyResponse(schedules), nil
}

func (u *doctorScheduleUsecase) SetWindowActive(ctx context.Context, doctorID uuid.UUID, windowID int, active bool) error {
	affected, err := u.scheduleRepo.SetWindowActive(ctx, u.db, windowID, active)
	if err != nil {
		u.log.WithError(err).Error("failed to toggle availability window")
		return err
	}
	if affected == 0 {
		return ErrWindowNotFound
	}

	// Other doctors sharing the window fall back to the cache TTL.
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		u.scheduleCache.Invalidate(ctx, doctorID, weekday)
	}
	return nil
}
