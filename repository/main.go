package repository

import (
	"time"

	"github.com/tnqbao/gau-showcase-service/infra"
	"gorm.io/gorm"
)

type Repository struct {
	ProjectRepo        ProjectRepo
	PartnerRepo        PartnerRepo
	StatRepo           StatRepo
	BoxDescriptionRepo BoxDescriptionRepo
	AdminRepo          AdminRepo
}

func InitRepository(infra *infra.Infra, cacheTTL time.Duration) *Repository {
	return NewRepository(infra.Postgres.DB, infra.Redis, cacheTTL)
}

// NewRepository builds the repositories on db; redis may be nil.
func NewRepository(db *gorm.DB, redis *infra.RedisClient, cacheTTL time.Duration) *Repository {
	cache := newListCache(redis, cacheTTL)
	return &Repository{
		ProjectRepo:        NewProjectRepository(db, cache),
		PartnerRepo:        NewPartnerRepository(db, cache),
		StatRepo:           NewStatRepository(db, cache),
		BoxDescriptionRepo: NewBoxDescriptionRepository(db),
		AdminRepo:          NewAdminRepository(db),
	}
}
