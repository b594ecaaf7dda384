package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecipePhoto records an uploaded image file for a recipe. The file itself
// lives under the configured upload directory; Meta carries size/mime/original
// filename as JSON.
type RecipePhoto struct {
	ID        string         `gorm:"type:char(36);primaryKey" json:"id"`
	RecipeID  string         `gorm:"type:char(36);not null;index" json:"recipe_id"`
	FileName  string         `gorm:"size:255;not null" json:"file_name"`
	URL       string         `gorm:"size:512;not null" json:"url"`
	Meta      datatypes.JSON `gorm:"type:json" json:"meta,omitempty"`
	CreatedAt time.Time
}

// BeforeCreate assigns a UUID if the caller did not supply one
func (p *RecipePhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for RecipePhoto
func (RecipePhoto) TableName() string {
	return "recipe_photos"
}
