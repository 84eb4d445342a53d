package repository

import (
	"context"
	"errors"
	"time"

	"clinicflow/internal/domain/entity"
	domainRepo "clinicflow/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

// CreateIfSlotFree commits a booking with lock-then-check-then-insert
// semantics.
//
// Flow, inside ONE transaction:
// 1. SELECT ... FOR UPDATE the doctor's non-terminal bookings at this slot
// 2. SELECT ... FOR UPDATE the patient's non-terminal bookings at this slot
// 3. If either set is non-empty -> conflict, roll back
// 4. INSERT the booking
//
// The row locks serialize concurrent attempts for the same slot: the loser
// blocks on step 1 or 2 until the winner commits, then observes the winner's
// row. If a writer bypasses the locked check entirely, the partial unique
// index on (doctor_id, appointment_date, appointment_time) rejects the
// insert and the violation is mapped to ErrDuplicateSlot.
func (r *bookingRepository) CreateIfSlotFree(ctx context.Context, db *gorm.DB, booking *entity.Booking) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		nonTerminal := entity.NonTerminalStatuses()

		var doctorConflicts []entity.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
				booking.DoctorID, booking.AppointmentDate, booking.AppointmentTime, nonTerminal).
			Find(&doctorConflicts).Error; err != nil {
			return err
		}
		if len(doctorConflicts) > 0 {
			return domainRepo.ErrDoctorSlotConflict
		}

		var patientConflicts []entity.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("patient_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
				booking.PatientID, booking.AppointmentDate, booking.AppointmentTime, nonTerminal).
			Find(&patientConflicts).Error; err != nil {
			return err
		}
		if len(patientConflicts) > 0 {
			return domainRepo.ErrPatientSlotConflict
		}

		return tx.Create(booking).Error
	})

	if err != nil && isUniqueViolation(err) {
		return domainRepo.ErrDuplicateSlot
	}
	return err
}

func (r *bookingRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.WithContext(ctx).
		Preload("Doctor.DoctorProfile").Preload("Patient").
		Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.WithContext(ctx).
		Preload("Doctor.DoctorProfile").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindDoctorBookedTimes(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error) {
	var times []string
	err := db.WithContext(ctx).Model(&entity.Booking{}).
		Where("doctor_id = ? AND appointment_date = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), entity.NonTerminalStatuses()).
		Pluck("to_char(appointment_time, 'HH24:MI')", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// UpdateStatus guards the transition with the eligible source statuses in
// the WHERE clause so concurrent transitions cannot both win.
func (r *bookingRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// isUniqueViolation checks for PostgreSQL error code 23505
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
