package converter

import (
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
)

// PrescriptionToResponse converts a Prescription entity to a DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:          prescription.ID,
		BookingID:   prescription.BookingID,
		DoctorID:    prescription.DoctorID,
		PatientID:   prescription.PatientID,
		Symptoms:    prescription.Symptoms,
		Diagnosis:   prescription.Diagnosis,
		Medications: prescription.Medications,
		Notes:       prescription.Notes,
		CreatedAt:   prescription.CreatedAt,
	}

	if prescription.Doctor.ID != uuid.Nil {
		response.DoctorName = prescription.Doctor.FullName
	}
	if prescription.Patient.ID != uuid.Nil {
		response.PatientName = prescription.Patient.FullName
	}

	return response
}

// PrescriptionsToResponses converts a slice of Prescription entities
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescription)
	}
	return responses
}
