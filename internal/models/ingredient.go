package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a row in the global, name-keyed ingredient catalog.
// Rows are created lazily the first time a recipe references a new name
// and are never deleted.
type Ingredient struct {
	ID   string `gorm:"type:char(36);primaryKey" json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

// BeforeCreate assigns a UUID if the caller did not supply one
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}
