package usecase

import (
	"context"

	"clinicflow/internal/converter"
	"clinicflow/internal/delivery/dto"
	"clinicflow/internal/domain/entity"
	"clinicflow/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorProfileUsecase interface {
	ListDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateProfile(ctx context.Context, doctorID uuid.UUID, request *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
}

type doctorProfileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.DoctorProfileRepository
}

func NewDoctorProfileUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, profileRepo repository.DoctorProfileRepository) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (u *doctorProfileUsecase) ListDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	profiles, err := u.profileRepo.FindAllActive(ctx, u.db, filter)
	if err != nil {
		u.log.WithError(err).Error("failed to list doctors")
		return nil, err
	}
	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to load doctor profile")
		return nil, err
	}
	if profile == nil || !profile.User.IsActive || !profile.User.IsDoctor() {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) UpdateProfile(ctx context.Context, doctorID uuid.UUID, request *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to load doctor profile")
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if request.Specialization != "" {
		profile.Specialization = request.Specialization
	}
	if request.Biography != "" {
		profile.Biography = request.Biography
	}
	if request.ConsultationFee != "" {
		fee, err := decimal.NewFromString(request.ConsultationFee)
		if err != nil || fee.IsNegative() {
			return nil, ErrInvalidConsultationFee
		}
		profile.ConsultationFee = fee
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
		u.log.WithError(err).Error("failed to update doctor profile")
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}
