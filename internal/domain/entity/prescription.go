package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is issued by a doctor for one booking. Medications are stored
// as plain text.
type Prescription struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Symptoms    string    `gorm:"type:text;not null" json:"symptoms"`
	Diagnosis   string    `gorm:"type:text;not null" json:"diagnosis"`
	Medications string    `gorm:"type:text;not null" json:"medications"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Booking Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient User    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
