package repository

import (
	"context"

	"clinicflow/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	// FindActiveDoctor returns the user only if it is an active doctor
	// account, nil otherwise.
	FindActiveDoctor(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	// FindActiveDoctorIDs lists ids of all active doctor accounts.
	FindActiveDoctorIDs(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error)
}
