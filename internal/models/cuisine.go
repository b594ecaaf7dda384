package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cuisine is a named grouping recipes can belong to (e.g. "Italian")
type Cuisine struct {
	ID          string  `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string  `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   time.Time
}

// BeforeCreate assigns a UUID if the caller did not supply one
func (c *Cuisine) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Cuisine
func (Cuisine) TableName() string {
	return "cuisines"
}
