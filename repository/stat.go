package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/utils"
	"gorm.io/gorm"
)

type StatPatch struct {
	Title       utils.Optional[string]
	Description utils.Optional[string]
}

type StatRepo interface {
	FindAll(ctx context.Context) ([]entity.Stat, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Stat, error)
	Create(ctx context.Context, stat *entity.Stat) error
	UpdateByID(ctx context.Context, id uuid.UUID, patch StatPatch) (*entity.Stat, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Stat, error)
}

type StatRepository struct {
	db    *gorm.DB
	cache *listCache
}

func NewStatRepository(db *gorm.DB, cache *listCache) *StatRepository {
	return &StatRepository{db: db, cache: cache}
}

func (r *StatRepository) FindAll(ctx context.Context) ([]entity.Stat, error) {
	var stats []entity.Stat
	if r.cache.get(ctx, statListKey, &stats) {
		return stats, nil
	}

	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&stats).Error; err != nil {
		return nil, err
	}
	r.cache.set(ctx, statListKey, stats)
	return stats, nil
}

func (r *StatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Stat, error) {
	var stat entity.Stat
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&stat).Error; err != nil {
		return nil, translateError(err)
	}
	return &stat, nil
}

func (r *StatRepository) Create(ctx context.Context, stat *entity.Stat) error {
	if err := requireFields("title", stat.Title, "description", stat.Description); err != nil {
		return err
	}
	if stat.ID == uuid.Nil {
		stat.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(stat).Error; err != nil {
		return err
	}
	r.cache.invalidate(ctx, statListKey)
	return nil
}

func (r *StatRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch StatPatch) (*entity.Stat, error) {
	updates := map[string]interface{}{}
	var missing []string
	setRequiredString(updates, &missing, "title", patch.Title)
	setRequiredString(updates, &missing, "description", patch.Description)
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	stat, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return stat, nil
	}

	if err := r.db.WithContext(ctx).Model(stat).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}
	r.cache.invalidate(ctx, statListKey)
	return r.FindByID(ctx, id)
}

func (r *StatRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Stat, error) {
	stat, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&entity.Stat{}, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	r.cache.invalidate(ctx, statListKey)
	return stat, nil
}
