package entity

import (
	"time"

	"github.com/google/uuid"
)

type Partner struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FullName    string    `json:"fullName" gorm:"type:varchar(255);not null"`
	Quote       string    `json:"quote" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	ImageURL    string    `json:"imageUrl" gorm:"column:image_url;type:varchar(1024);not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
