package usecase

import (
	"context"
	"errors"
	"time"

	"clinicflow/internal/converter"
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/entity"
	"clinicflow/internal/domain/repository"
	"clinicflow/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxSlotsPerWindow bounds slot expansion per availability window. The
// counter advances on every loop pass, including passes skipped for past or
// booked times.
const maxSlotsPerWindow = 50

// bookingPageDays is how many days ahead the booking page shows.
const bookingPageDays = 7

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrInvalidDate    = errors.New("invalid date")
)

type SlotUsecase interface {
	ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error)
	GetBookingPage(ctx context.Context, doctorID uuid.UUID) (*dto.BookingPageResponse, error)
}

type slotUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	scheduleRepo  repository.ScheduleRepository
	bookingRepo   repository.BookingRepository
	scheduleCache service.ScheduleCache
	now           func() time.Time
}

func NewSlotUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, scheduleRepo repository.ScheduleRepository, bookingRepo repository.BookingRepository, scheduleCache service.ScheduleCache) SlotUsecase {
	return &slotUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		scheduleRepo:  scheduleRepo,
		bookingRepo:   bookingRepo,
		scheduleCache: scheduleCache,
		now:           time.Now,
	}
}

func (u *slotUsecase) ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error) {
	doctor, err := u.userRepo.FindActiveDoctor(ctx, u.db, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to look up doctor")
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	slots, err := u.slotsForDay(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	return &dto.SlotListResponse{
		Date:  day.Format("2006-01-02"),
		Slots: slots,
		Total: len(slots),
	}, nil
}

func (u *slotUsecase) GetBookingPage(ctx context.Context, doctorID uuid.UUID) (*dto.BookingPageResponse, error) {
	doctor, err := u.userRepo.FindActiveDoctor(ctx, u.db, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to look up doctor")
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	start := u.now()
	days := make([]dto.BookingDayResponse, 0, bookingPageDays)
	for i := 0; i < bookingPageDays; i++ {
		day := start.AddDate(0, 0, i)
		slots, err := u.slotsForDay(ctx, doctorID, day)
		if err != nil {
			return nil, err
		}
		days = append(days, dto.BookingDayResponse{
			Date:   day.Format("2006-01-02"),
			Day:    day.Format("Mon"),
			DayNum: day.Format("02"),
			Month:  day.Format("Jan"),
			Year:   day.Format("2006"),
			Slots:  slots,
		})
	}

	var doctorResp *dto.DoctorResponse
	if doctor.DoctorProfile != nil {
		profile := *doctor.DoctorProfile
		profile.User = *doctor
		doctorResp = converter.DoctorProfileToResponse(&profile)
	}

	return &dto.BookingPageResponse{
		Doctor: doctorResp,
		Days:   days,
	}, nil
}

// slotsForDay expands the doctor's active windows for the day's weekday into
// bookable slots, suppressing times already past (when the day is today) and
// times the doctor already holds a live booking for. Windows are expanded in
// the order the schedule returns them; no cross-window ordering or
// de-duplication is applied.
func (u *slotUsecase) slotsForDay(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]dto.SlotResponse, error) {
	windows, err := loadActiveWindows(ctx, u.db, u.scheduleRepo, u.scheduleCache, doctorID, day.Weekday())
	if err != nil {
		u.log.WithError(err).Error("failed to load availability windows")
		return nil, err
	}

	slots := make([]dto.SlotResponse, 0)
	if len(windows) == 0 {
		return slots, nil
	}

	booked, err := u.bookingRepo.FindDoctorBookedTimes(ctx, u.db, doctorID, day)
	if err != nil {
		u.log.WithError(err).Error("failed to load booked times")
		return nil, err
	}
	bookedSet := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		bookedSet[t] = struct{}{}
	}

	now := u.now()
	today := sameDate(day, now)
	nowMin := now.Hour()*60 + now.Minute()

	for _, window := range windows {
		slots = append(slots, expandWindow(window, today, nowMin, bookedSet)...)
	}
	return slots, nil
}

// expandWindow walks a window from its start up to but excluding its end in
// slot-duration steps. Windows with malformed times are skipped.
func expandWindow(window entity.AvailabilityWindow, today bool, nowMin int, booked map[string]struct{}) []dto.SlotResponse {
	startMin, err := minutesOfDay(window.StartTime)
	if err != nil {
		return nil
	}
	endMin, err := minutesOfDay(window.EndTime)
	if err != nil {
		return nil
	}

	duration := window.SlotDuration()
	var out []dto.SlotResponse
	for cur, count := startMin, 0; cur < endMin && count < maxSlotsPerWindow; cur, count = cur+duration, count+1 {
		if today && cur < nowMin {
			continue
		}
		clock := formatMinutes(cur)
		if _, taken := booked[clock]; taken {
			continue
		}
		out = append(out, dto.SlotResponse{
			Time:  clock,
			Label: slotLabel(cur),
		})
	}
	return out
}
