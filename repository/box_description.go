package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-showcase-service/entity"
	"gorm.io/gorm"
)

type BoxDescriptionRepo interface {
	FindFirst(ctx context.Context) (*entity.BoxDescription, error)
	Upsert(ctx context.Context, description string) (*entity.BoxDescription, error)
}

// BoxDescriptionRepository treats the table as a singleton: every operation
// targets the oldest row.
type BoxDescriptionRepository struct {
	db *gorm.DB
}

func NewBoxDescriptionRepository(db *gorm.DB) *BoxDescriptionRepository {
	return &BoxDescriptionRepository{db: db}
}

func (r *BoxDescriptionRepository) FindFirst(ctx context.Context) (*entity.BoxDescription, error) {
	var box entity.BoxDescription
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&box).Error; err != nil {
		return nil, translateError(err)
	}
	return &box, nil
}

// Upsert updates the first record, creating it when the table is empty.
func (r *BoxDescriptionRepository) Upsert(ctx context.Context, description string) (*entity.BoxDescription, error) {
	if err := requireFields("description", description); err != nil {
		return nil, err
	}

	box, err := r.FindFirst(ctx)
	if errors.Is(err, ErrNotFound) {
		box = &entity.BoxDescription{ID: uuid.New(), Description: description}
		if err := r.db.WithContext(ctx).Create(box).Error; err != nil {
			return nil, err
		}
		return box, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(box).Update("description", description).Error; err != nil {
		return nil, err
	}
	box.Description = description
	return box, nil
}
