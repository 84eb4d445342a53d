package repository

import (
	"context"

	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, db *gorm.DB, review *entity.Review) error
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Review, error)
	FindByDoctorAndPatient(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) (*entity.Review, error)
}
