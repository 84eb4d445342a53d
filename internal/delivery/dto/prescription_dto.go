package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePrescriptionRequest struct {
	BookingID   uuid.UUID `json:"booking_id" validate:"required"`
	Symptoms    string    `json:"symptoms" validate:"required"`
	Diagnosis   string    `json:"diagnosis" validate:"required"`
	Medications string    `json:"medications" validate:"required"`
	Notes       string    `json:"notes" validate:"omitempty"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID          int       `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	PatientID   uuid.UUID `json:"patient_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	PatientName string    `json:"patient_name,omitempty"`
	Symptoms    string    `json:"symptoms"`
	Diagnosis   string    `json:"diagnosis"`
	Medications string    `json:"medications"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
