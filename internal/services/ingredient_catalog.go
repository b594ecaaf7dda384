package services

import (
	"errors"

	"gorm.io/gorm"

	"recipebook-backend/internal/models"
)

// ResolveIngredient returns the catalog identifier for name, inserting a new
// row when the name is unknown. The catalog is append-only and keyed by name.
//
// The lookup-then-insert is not atomic: two concurrent first-time resolutions
// for the same name can both miss the lookup. The UNIQUE index on name makes
// one of the inserts fail, and that specific failure is absorbed by a second
// lookup of the now-existing row. Any other insert error propagates.
func ResolveIngredient(db *gorm.DB, name string) (string, error) {
	var ingredient models.Ingredient
	err := db.Where("name = ?", name).First(&ingredient).Error
	if err == nil {
		return ingredient.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	ingredient = models.Ingredient{Name: name}
	if err := db.Create(&ingredient).Error; err != nil {
		if !isUniqueViolation(err) {
			return "", err
		}
		// Lost the race: the row exists now, look it up
		ingredient = models.Ingredient{}
		if err := db.Where("name = ?", name).First(&ingredient).Error; err != nil {
			return "", err
		}
	}

	return ingredient.ID, nil
}
