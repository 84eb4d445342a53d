package converter

import (
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to a BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:              booking.ID,
		DoctorID:        booking.DoctorID,
		PatientID:       booking.PatientID,
		AppointmentDate: booking.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: normalizeClockTime(booking.AppointmentTime),
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	if booking.Doctor.ID != uuid.Nil && booking.Doctor.DoctorProfile != nil {
		response.Doctor = DoctorProfileToResponse(booking.Doctor.DoctorProfile)
		response.Doctor.Email = booking.Doctor.Email
		response.Doctor.FullName = booking.Doctor.FullName
		response.Doctor.IsActive = booking.Doctor.IsActive
	}
	if booking.Patient.ID != uuid.Nil {
		response.PatientName = booking.Patient.FullName
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = *BookingToResponse(&booking)
	}
	return responses
}

// normalizeClockTime trims a database "HH:MM:SS" value down to "HH:MM".
func normalizeClockTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
