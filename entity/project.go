package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Project struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string                      `json:"title" gorm:"type:varchar(255);not null"`
	Location    string                      `json:"location" gorm:"type:varchar(255);not null"`
	Year        int                         `json:"year" gorm:"not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Images      datatypes.JSONSlice[string] `json:"images" gorm:"type:jsonb;not null"`
	Video       *string                     `json:"video" gorm:"type:varchar(1024)"`
	CreatedAt   time.Time                   `json:"createdAt" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time                   `json:"updatedAt" gorm:"autoUpdateTime"`
}
