package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-showcase-service/entity"
	"gorm.io/gorm"
)

type AdminRepo interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts an admin after checking that the email is free. Emails are
// stored lower-cased.
func (r *AdminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	admin.Email = normalizeEmail(admin.Email)
	if err := requireFields("name", admin.Name, "email", admin.Email, "password", admin.Password); err != nil {
		return err
	}

	exists, err := r.ExistsByEmail(ctx, admin.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateEmail
	}

	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		// the unique index catches a concurrent insert that passed the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&admin).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &admin, nil
}

func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Admin{}).Where("email = ?", normalizeEmail(email)).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	result := r.db.WithContext(ctx).Model(&entity.Admin{}).Where("id = ?", id).Update("password", hashed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdminRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	var admin entity.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, translateError(err)
	}

	result := r.db.WithContext(ctx).Delete(&entity.Admin{}, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
