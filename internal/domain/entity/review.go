package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a patient's rating of a doctor, one per (doctor, patient) pair.
type Review struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_doctor_patient" json:"doctor_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_doctor_patient" json:"patient_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
