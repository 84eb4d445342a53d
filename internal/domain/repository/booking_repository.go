package repository

import (
	"context"
	"errors"
	"time"

	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conflict sentinels returned by CreateIfSlotFree. The caller decides how to
// surface them; ErrDuplicateSlot is the uniqueness-constraint fallback that
// fires when the locked re-check was bypassed.
var (
	ErrDoctorSlotConflict  = errors.New("doctor already has a booking at this slot")
	ErrPatientSlotConflict = errors.New("patient already has a booking at this slot")
	ErrDuplicateSlot       = errors.New("booking uniqueness constraint violated")
)

type BookingRepository interface {
	// CreateIfSlotFree inserts the booking inside a single transaction that
	// locks the doctor's and patient's conflicting non-terminal rows before
	// re-checking the slot, so two concurrent attempts for the same slot
	// serialize and exactly one succeeds.
	CreateIfSlotFree(ctx context.Context, db *gorm.DB, booking *entity.Booking) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Booking, error)
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Booking, error)
	// FindDoctorBookedTimes returns the "HH:MM" times of the doctor's
	// non-terminal bookings on the given date.
	FindDoctorBookedTimes(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error)
	// UpdateStatus moves a booking from any of the given statuses to the
	// target status. Returns affected rows: 0 means the booking was not in
	// an eligible status (lost race or terminal state).
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (int64, error)
}
