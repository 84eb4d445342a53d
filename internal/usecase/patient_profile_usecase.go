package usecase

import (
	"context"
	"errors"

	"clinicflow/internal/converter"
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientProfileUsecase interface {
	GetProfile(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	UpdateProfile(ctx context.Context, patientID uuid.UUID, request *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.PatientProfileRepository
}

func NewPatientProfileUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, profileRepo repository.PatientProfileRepository) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (u *patientProfileUsecase) GetProfile(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, patientID)
	if err != nil {
		u.log.WithError(err).Error("failed to load patient profile")
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientProfileUsecase) UpdateProfile(ctx context.Context, patientID uuid.UUID, request *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, patientID)
	if err != nil {
		u.log.WithError(err).Error("failed to load patient profile")
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	if request.PhoneNumber != "" {
		profile.PhoneNumber = request.PhoneNumber
	}
	if request.Address != "" {
		profile.Address = request.Address
	}
	if request.BloodGroup != "" {
		profile.BloodGroup = request.BloodGroup
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if request.FullName != "" && request.FullName != profile.User.FullName {
			profile.User.FullName = request.FullName
			if err := u.userRepo.Update(ctx, tx, &profile.User); err != nil {
				return err
			}
		}
		return u.profileRepo.Update(ctx, tx, profile)
	})
	if err != nil {
		u.log.WithError(err).Error("failed to update patient profile")
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}
