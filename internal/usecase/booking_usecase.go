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

var (
	ErrInvalidBookingInput  = errors.New("invalid appointment date or time")
	ErrPastDateTime         = errors.New("appointment is in the past")
	ErrOutsideWorkingHours  = errors.New("appointment is outside working hours")
	ErrSlotTaken            = errors.New("slot is already booked")
	ErrPatientDoubleBooked  = errors.New("patient already has a booking at this time")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingNotOwned      = errors.New("booking belongs to another user")
	ErrBookingNotTransitive = errors.New("booking is not in an eligible status")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, patientID uuid.UUID, request *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	ListPatientBookings(ctx context.Context, patientID uuid.UUID) (*dto.BookingListResponse, error)
	ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.BookingListResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, error)
	ConfirmBooking(ctx context.Context, doctorID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, error)
	CompleteBooking(ctx context.Context, doctorID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, error)
	MarkNoShow(ctx context.Context, doctorID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	scheduleRepo  repository.ScheduleRepository
	bookingRepo   repository.BookingRepository
	scheduleCache service.ScheduleCache
	now           func() time.Time
}

func NewBookingUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, scheduleRepo repository.ScheduleRepository, bookingRepo repository.BookingRepository, scheduleCache service.ScheduleCache) BookingUsecase {
	return &bookingUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		scheduleRepo:  scheduleRepo,
		bookingRepo:   bookingRepo,
		scheduleCache: scheduleCache,
		now:           time.Now,
	}
}

// CreateBooking validates the requested slot and inserts the booking. Checks
// run in a fixed order: input shape, past time, working hours, then the
// transactional slot and patient conflict checks inside the repository.
func (u *bookingUsecase) CreateBooking(ctx context.Context, patientID uuid.UUID, request *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	doctor, err := u.userRepo.FindActiveDoctor(ctx, u.db, request.DoctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to look up doctor")
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	day, err := time.ParseInLocation("2006-01-02", request.AppointmentDate, time.Local)
	if err != nil {
		return nil, ErrInvalidBookingInput
	}
	slotMin, err := minutesOfDay(request.AppointmentTime)
	if err != nil {
		return nil, ErrInvalidBookingInput
	}

	now := u.now()
	at := time.Date(day.Year(), day.Month(), day.Day(), slotMin/60, slotMin%60, 0, 0, time.Local)
	if at.Before(now) {
		return nil, ErrPastDateTime
	}

	windows, err := loadActiveWindows(ctx, u.db, u.scheduleRepo, u.scheduleCache, request.DoctorID, day.Weekday())
	if err != nil {
		u.log.WithError(err).Error("failed to load availability windows")
		return nil, err
	}
	if !withinAnyWindow(windows, slotMin) {
		return nil, ErrOutsideWorkingHours
	}

	booking := &entity.Booking{
		DoctorID:        request.DoctorID,
		PatientID:       patientID,
		AppointmentDate: day,
		AppointmentTime: formatMinutes(slotMin),
		Status:          entity.BookingStatusPending,
	}

	if err := u.bookingRepo.CreateIfSlotFree(ctx, u.db, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrDoctorSlotConflict), errors.Is(err, repository.ErrDuplicateSlot):
			return nil, ErrSlotTaken
		case errors.Is(err, repository.ErrPatientSlotConflict):
			return nil, ErrPatientDoubleBooked
		}
		u.log.WithError(err).Error("failed to create booking")
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"doctor_id":  booking.DoctorID,
		"patient_id": booking.PatientID,
	}).Info("booking created")

	return converter.BookingToResponse(booking), nil
}

// withinAnyWindow reports whether the slot falls inside one of the windows.
// The window end is accepted as a valid booking time even though slot
// expansion stops before it; the wider acceptance is kept on purpose so
// manually entered end-of-window times are not rejected.
func withinAnyWindow(windows []entity.AvailabilityWindow, slotMin int) bool {
	for _, window := range windows {
		startMin, err := minutesOfDay(window.StartTime)
		if err != nil {
			continue
		}
		endMin, err := minutesOfDay(window.EndTime)
		if err != nil {
			continue
		}
		if slotMin >= startMin && slotMin <= endMin {
			return true
		}
	}
	return false
}

func (u *bookingUsecase) ListPatientBookings(ctx context.Context, patientID uuid.UUID) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.WithError(err).Error("failed to list patient bookings")
		return nil, err
	}
	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to list doctor appointments")
		return nil, err
	}
	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// CancelBooking cancels a live booking. Either the owning patient or the
// booked doctor may cancel.
func (u *bookingUsecase) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findOwned(ctx, bookingID, func(b *entity.Booking) bool {
		return b.PatientID == userID || b.DoctorID == userID
	})
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, booking, entity.NonTerminalStatuses(), entity.BookingStatusCancelled)
}

// ConfirmBooking moves a pending booking to confirmed.
func (u *bookingUsecase) ConfirmBooking(ctx context.Context, doctorID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findOwned(ctx, bookingID, func(b *entity.Booking) bool {
		return b.DoctorID == doctorID
	})
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, booking, []entity.BookingStatus{entity.BookingStatusPending}, entity.BookingStatusConfirmed)
}

// CompleteBooking marks a live booking as completed.
func (u *bookingUsecase) CompleteBooking(ctx context.Context, doctorID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findOwned(ctx, bookingID, func(b *entity.Booking) bool {
		return b.DoctorID == doctorID
	})
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, booking, entity.NonTerminalStatuses(), entity.BookingStatusCompleted)
}

// MarkNoShow marks a live booking as a no-show.
func (u *bookingUsecase) MarkNoShow(ctx context.Context, doctorID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findOwned(ctx, bookingID, func(b *entity.Booking) bool {
		return b.DoctorID == doctorID
	})
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, booking, entity.NonTerminalStatuses(), entity.BookingStatusNoShow)
}

func (u *bookingUsecase) findOwned(ctx context.Context, bookingID uuid.UUID, owns func(*entity.Booking) bool) (*entity.Booking, error) {
	booking, err := u.bookingRepo.FindByID(ctx, u.db, bookingID)
	if err != nil {
		u.log.WithError(err).Error("failed to look up booking")
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !owns(booking) {
		return nil, ErrBookingNotOwned
	}
	return booking, nil
}

// transition applies a guarded status update. Zero affected rows means the
// booking raced into a terminal state between the read and the update.
func (u *bookingUsecase) transition(ctx context.Context, booking *entity.Booking, from []entity.BookingStatus, to entity.BookingStatus) (*dto.BookingResponse, error) {
	affected, err := u.bookingRepo.UpdateStatus(ctx, u.db, booking.ID, from, to)
	if err != nil {
		u.log.WithError(err).Error("failed to update booking status")
		return nil, err
	}
	if affected == 0 {
		return nil, ErrBookingNotTransitive
	}

	booking.Status = to
	u.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"status":     to,
	}).Info("booking status updated")

	return converter.BookingToResponse(booking), nil
}
