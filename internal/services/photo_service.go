package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"recipebook-backend/internal/models"
	"recipebook-backend/internal/types"
)

// PhotoMeta describes an uploaded file
type PhotoMeta struct {
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
}

// AddRecipePhoto records an uploaded photo against a recipe. The recipe must
// exist; the file is assumed to be already on disk.
func AddRecipePhoto(db *gorm.DB, recipeID, fileName, url string, meta PhotoMeta) (*models.RecipePhoto, error) {
	var recipe models.Recipe
	if err := db.Select("id").Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	photo := models.RecipePhoto{
		RecipeID: recipeID,
		FileName: fileName,
		URL:      url,
		Meta:     datatypes.JSON(metaJSON),
	}
	if err := db.Create(&photo).Error; err != nil {
		return nil, classifyWriteError("add recipe photo", err)
	}

	return &photo, nil
}

// ListRecipePhotos returns a recipe's photos, newest first
func ListRecipePhotos(db *gorm.DB, recipeID string) ([]models.RecipePhoto, error) {
	var photos []models.RecipePhoto
	err := db.Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}
