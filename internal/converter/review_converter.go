package converter

import (
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewToResponse converts a Review entity to a DTO
func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	response := &dto.ReviewResponse{
		ID:        review.ID,
		DoctorID:  review.DoctorID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}

	if review.Patient.ID != uuid.Nil {
		response.PatientName = review.Patient.FullName
	}

	return response
}

// ReviewsToResponses converts a slice of Review entities
func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = *ReviewToResponse(&review)
	}
	return responses
}
