package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered author of recipes
type User struct {
	ID           string   `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string   `gorm:"size:255;not null" json:"name"`
	Email        string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Recipes      []Recipe `gorm:"foreignKey:AuthorID" json:"recipes,omitempty"`
}

// BeforeCreate assigns a UUID if the caller did not supply one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
