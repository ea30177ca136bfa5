package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/utils"
	"gorm.io/gorm"
)

type PartnerPatch struct {
	FullName    utils.Optional[string]
	Quote       utils.Optional[string]
	Description utils.Optional[string]
	ImageURL    utils.Optional[string]
}

func (p PartnerPatch) Validate() error {
	_, err := partnerUpdates(p)
	return err
}

type PartnerRepo interface {
	FindAll(ctx context.Context) ([]entity.Partner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error)
	Create(ctx context.Context, partner *entity.Partner) error
	UpdateByID(ctx context.Context, id uuid.UUID, patch PartnerPatch) (*entity.Partner, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error)
}

type PartnerRepository struct {
	db    *gorm.DB
	cache *listCache
}

func NewPartnerRepository(db *gorm.DB, cache *listCache) *PartnerRepository {
	return &PartnerRepository{db: db, cache: cache}
}

func (r *PartnerRepository) FindAll(ctx context.Context) ([]entity.Partner, error) {
	var partners []entity.Partner
	if r.cache.get(ctx, partnerListKey, &partners) {
		return partners, nil
	}

	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&partners).Error; err != nil {
		return nil, err
	}
	r.cache.set(ctx, partnerListKey, partners)
	return partners, nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	var partner entity.Partner
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&partner).Error; err != nil {
		return nil, translateError(err)
	}
	return &partner, nil
}

func (r *PartnerRepository) Create(ctx context.Context, partner *entity.Partner) error {
	err := requireFields(
		"fullName", partner.FullName,
		"quote", partner.Quote,
		"description", partner.Description,
		"image", partner.ImageURL,
	)
	if err != nil {
		return err
	}
	if partner.ID == uuid.Nil {
		partner.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(partner).Error; err != nil {
		return err
	}
	r.cache.invalidate(ctx, partnerListKey)
	return nil
}

func (r *PartnerRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch PartnerPatch) (*entity.Partner, error) {
	updates, err := partnerUpdates(patch)
	if err != nil {
		return nil, err
	}

	partner, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return partner, nil
	}

	if err := r.db.WithContext(ctx).Model(partner).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}
	r.cache.invalidate(ctx, partnerListKey)
	return r.FindByID(ctx, id)
}

func (r *PartnerRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	partner, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&entity.Partner{}, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	r.cache.invalidate(ctx, partnerListKey)
	return partner, nil
}

func partnerUpdates(patch PartnerPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	var missing []string
	setRequiredString(updates, &missing, "full_name", patch.FullName)
	setRequiredString(updates, &missing, "quote", patch.Quote)
	setRequiredString(updates, &missing, "description", patch.Description)
	setRequiredString(updates, &missing, "image_url", patch.ImageURL)
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}
	return updates, nil
}
