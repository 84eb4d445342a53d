package usecase

import (
	"context"
	"errors"

	"clinicflow/internal/converter"
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/entity"
	"clinicflow/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReviewExists       = errors.New("doctor already reviewed by this patient")
	ErrNoCompletedBooking = errors.New("no completed booking with this doctor")
)

type ReviewUsecase interface {
	// CreateReview records a patient's rating of a doctor. The patient must
	// have at least one completed booking with the doctor, and may review
	// each doctor once.
	CreateReview(ctx context.Context, patientID uuid.UUID, request *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListDoctorReviews(ctx context.Context, doctorID uuid.UUID) (*dto.ReviewListResponse, error)
}

type reviewUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	reviewRepo  repository.ReviewRepository
}

func NewReviewUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, bookingRepo repository.BookingRepository, reviewRepo repository.ReviewRepository) ReviewUsecase {
	return &reviewUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
	}
}

func (u *reviewUsecase) CreateReview(ctx context.Context, patientID uuid.UUID, request *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	doctor, err := u.userRepo.FindActiveDoctor(ctx, u.db, request.DoctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to look up doctor")
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	existing, err := u.reviewRepo.FindByDoctorAndPatient(ctx, u.db, request.DoctorID, patientID)
	if err != nil {
		u.log.WithError(err).Error("failed to check existing review")
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	completed, err := u.hasCompletedBooking(ctx, patientID, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrNoCompletedBooking
	}

	review := &entity.Review{
		DoctorID:  request.DoctorID,
		PatientID: patientID,
		Rating:    request.Rating,
		Comment:   request.Comment,
	}

	if err := u.reviewRepo.Create(ctx, u.db, review); err != nil {
		if isDuplicateKeyError(err, "doctor_patient") {
			return nil, ErrReviewExists
		}
		u.log.WithError(err).Error("failed to create review")
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) ListDoctorReviews(ctx context.Context, doctorID uuid.UUID) (*dto.ReviewListResponse, error) {
	reviews, err := u.reviewRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to list reviews")
		return nil, err
	}
	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}

func (u *reviewUsecase) hasCompletedBooking(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	bookings, err := u.bookingRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.WithError(err).Error("failed to list patient bookings")
		return false, err
	}
	for i := range bookings {
		if bookings[i].DoctorID == doctorID && bookings[i].Status == entity.BookingStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}
