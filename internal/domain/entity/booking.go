package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// NonTerminalStatuses are the statuses that still occupy their slot. Only
// bookings in these states participate in double-booking checks.
func NonTerminalStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusConfirmed}
}

// Booking represents one appointment of a patient with a doctor.
// AppointmentTime is stored as "HH:MM". Bookings are never deleted; the
// status column carries the full lifecycle.
type Booking struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_doctor_date" json:"doctor_id"`
	PatientID       uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_patient_date" json:"patient_id"`
	AppointmentDate time.Time     `gorm:"type:date;not null;index:idx_bookings_doctor_date;index:idx_bookings_patient_date" json:"appointment_date"`
	AppointmentTime string        `gorm:"type:time;not null" json:"appointment_time"`
	Status          BookingStatus `gorm:"type:booking_status;not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if booking is in pending status
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsConfirmed checks if booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsTerminal reports whether the booking has left its slot for good.
// Terminal bookings never transition again.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}
