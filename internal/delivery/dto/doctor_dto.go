package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type UpdateDoctorProfileRequest struct {
	FullName        string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Specialization  string `json:"specialization" validate:"omitempty,max=100"`
	Biography       string `json:"biography" validate:"omitempty"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	RegistrationNumber string    `json:"registration_number"`
	Specialization     string    `json:"specialization"`
	Biography          string    `json:"biography,omitempty"`
	ConsultationFee    string    `json:"consultation_fee"`
	IsActive           bool      `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
