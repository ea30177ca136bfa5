package entity

import (
	"time"

	"github.com/google/uuid"
)

// BoxDescription is conceptually a singleton; reads target the first row.
type BoxDescription struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
