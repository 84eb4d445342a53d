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
	ErrPrescriptionExists     = errors.New("booking already has a prescription")
	ErrBookingNotCompleted    = errors.New("booking is not completed")
	ErrPrescriptionNotFound   = errors.New("prescription not found")
	ErrPrescriptionNotAllowed = errors.New("prescription belongs to another user")
)

type PrescriptionUsecase interface {
	// CreatePrescription issues a prescription for a completed booking.
	// A booking carries at most one prescription.
	CreatePrescription(ctx context.Context, doctorID uuid.UUID, request *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetByBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) (*dto.PrescriptionResponse, error)
	ListDoctorPrescriptions(ctx context.Context, doctorID uuid.UUID) (*dto.PrescriptionListResponse, error)
	ListPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	bookingRepo      repository.BookingRepository
	prescriptionRepo repository.PrescriptionRepository
}

func NewPrescriptionUsecase(db *gorm.DB, log *logrus.Logger, bookingRepo repository.BookingRepository, prescriptionRepo repository.PrescriptionRepository) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		bookingRepo:      bookingRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

func (u *prescriptionUsecase) CreatePrescription(ctx context.Context, doctorID uuid.UUID, request *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	booking, err := u.bookingRepo.FindByID(ctx, u.db, request.BookingID)
	if err != nil {
		u.log.WithError(err).Error("failed to look up booking")
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.DoctorID != doctorID {
		return nil, ErrBookingNotOwned
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	prescription := &entity.Prescription{
		BookingID:   booking.ID,
		DoctorID:    booking.DoctorID,
		PatientID:   booking.PatientID,
		Symptoms:    request.Symptoms,
		Diagnosis:   request.Diagnosis,
		Medications: request.Medications,
		Notes:       request.Notes,
	}

	if err := u.prescriptionRepo.Create(ctx, u.db, prescription); err != nil {
		if isDuplicateKeyError(err, "booking_id") {
			return nil, ErrPrescriptionExists
		}
		u.log.WithError(err).Error("failed to create prescription")
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"prescription_id": prescription.ID,
		"booking_id":      prescription.BookingID,
	}).Info("prescription issued")

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetByBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByBookingID(ctx, u.db, bookingID)
	if err != nil {
		u.log.WithError(err).Error("failed to load prescription")
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.DoctorID != userID && prescription.PatientID != userID {
		return nil, ErrPrescriptionNotAllowed
	}
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) ListDoctorPrescriptions(ctx context.Context, doctorID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to list prescriptions")
		return nil, err
	}
	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) ListPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.WithError(err).Error("failed to list prescriptions")
		return nil, err
	}
	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}
