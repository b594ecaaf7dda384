package services

import (
	"errors"

	"gorm.io/gorm"

	"recipebook-backend/internal/models"
	"recipebook-backend/internal/types"
)

// CreateCuisineInput carries the fields for a new cuisine
type CreateCuisineInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// UpdateCuisineInput is a partial cuisine update; nil fields are untouched
type UpdateCuisineInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateCuisine inserts a cuisine; a duplicate name is a ConstraintError
func CreateCuisine(db *gorm.DB, in CreateCuisineInput) (string, error) {
	cuisine := models.Cuisine{Name: in.Name, Description: in.Description}
	if err := db.Create(&cuisine).Error; err != nil {
		return "", classifyWriteError("create cuisine", err)
	}
	return cuisine.ID, nil
}

// ListCuisines returns all cuisines ordered by name, including those no
// recipe references
func ListCuisines(db *gorm.DB) ([]models.Cuisine, error) {
	var cuisines []models.Cuisine
	if err := db.Order("name ASC").Find(&cuisines).Error; err != nil {
		return nil, err
	}
	return cuisines, nil
}

// GetCuisineByID fetches one cuisine or types.ErrNotFound
func GetCuisineByID(db *gorm.DB, id string) (*models.Cuisine, error) {
	var cuisine models.Cuisine
	if err := db.Where("id = ?", id).First(&cuisine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &cuisine, nil
}

// UpdateCuisine applies a partial update to a cuisine
func UpdateCuisine(db *gorm.DB, id string, in UpdateCuisineInput) error {
	var cuisine models.Cuisine
	if err := db.Where("id = ?", id).First(&cuisine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrNotFound
		}
		return err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) == 0 {
		return nil
	}

	if err := db.Model(&cuisine).Updates(updates).Error; err != nil {
		return classifyWriteError("update cuisine", err)
	}
	return nil
}

// DeleteCuisine removes a cuisine and its recipe associations in one
// transaction. Recipes themselves are untouched.
func DeleteCuisine(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cuisine_id = ?", id).Delete(&models.RecipeCuisine{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Cuisine{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.ErrNotFound
		}
		return nil
	})
}
