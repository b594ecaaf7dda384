package services

import (
	"errors"

	"gorm.io/gorm"

	"recipebook-backend/internal/models"
	"recipebook-backend/internal/types"
)

// RecipeIngredientInput names an ingredient by catalog name; the identifier
// is resolved inside the write transaction.
type RecipeIngredientInput struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
}

// RecipeStepInput carries a caller-numbered instruction. Numbers are stored
// as given; (recipe_id, step_number) uniqueness is the only enforcement.
type RecipeStepInput struct {
	StepNumber  int    `json:"step_number" validate:"required,gt=0"`
	Instruction string `json:"instruction" validate:"required"`
}

// CreateRecipeInput is the full aggregate for a create
type CreateRecipeInput struct {
	Name        string                  `json:"name" validate:"required"`
	Description string                  `json:"description"`
	AuthorID    string                  `json:"-"`
	CuisineIDs  []string                `json:"cuisine_ids"`
	Ingredients []RecipeIngredientInput `json:"ingredients" validate:"dive"`
	Steps       []RecipeStepInput       `json:"steps" validate:"dive"`
}

// UpdateRecipeInput is a partial update. Nil scalar pointers leave the stored
// value unchanged; a nil slice leaves that sub-collection untouched, while a
// non-nil slice (empty included) replaces it wholesale.
type UpdateRecipeInput struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	CuisineIDs  []string                `json:"cuisine_ids"`
	Ingredients []RecipeIngredientInput `json:"ingredients" validate:"dive"`
	Steps       []RecipeStepInput       `json:"steps" validate:"dive"`
}

// CreateRecipe inserts the recipe row plus all cuisine/ingredient/step rows
// as one transaction: either the whole aggregate commits or none of it does.
// Ingredient names are resolved through the catalog inside the same
// transaction. Returns the new recipe identifier.
func CreateRecipe(db *gorm.DB, in CreateRecipeInput) (string, error) {
	recipe := models.Recipe{
		Name:        in.Name,
		Description: in.Description,
		AuthorID:    in.AuthorID,
		CreatedBy:   in.AuthorID,
		UpdatedBy:   in.AuthorID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := insertCuisineLinks(tx, recipe.ID, in.CuisineIDs); err != nil {
			return err
		}
		if err := insertIngredientLinks(tx, recipe.ID, in.Ingredients); err != nil {
			return err
		}
		return insertSteps(tx, recipe.ID, in.Steps)
	})
	if err != nil {
		return "", classifyWriteError("create recipe", err)
	}

	return recipe.ID, nil
}

// UpdateRecipe applies a partial update atomically. Supplied sub-collections
// are replaced wholesale (delete-then-reinsert); updated_by and updated_at
// are stamped on every successful call. There is no version check: two
// concurrent updates interleave last-writer-wins.
func UpdateRecipe(db *gorm.DB, id string, in UpdateRecipeInput, editorID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ?", id).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{"updated_by": editorID}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}

		if in.CuisineIDs != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeCuisine{}).Error; err != nil {
				return err
			}
			if err := insertCuisineLinks(tx, id, in.CuisineIDs); err != nil {
				return err
			}
		}

		if in.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := insertIngredientLinks(tx, id, in.Ingredients); err != nil {
				return err
			}
		}

		if in.Steps != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeStep{}).Error; err != nil {
				return err
			}
			if err := insertSteps(tx, id, in.Steps); err != nil {
				return err
			}
		}

		return nil
	})

	return classifyWriteError("update recipe", err)
}

// ArchiveRecipe deletes the recipe row; the database cascades the delete to
// steps, photos, and both association tables. Shared ingredients and
// cuisines are untouched.
func ArchiveRecipe(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func insertCuisineLinks(tx *gorm.DB, recipeID string, cuisineIDs []string) error {
	for _, cuisineID := range cuisineIDs {
		link := models.RecipeCuisine{RecipeID: recipeID, CuisineID: cuisineID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertIngredientLinks(tx *gorm.DB, recipeID string, ingredients []RecipeIngredientInput) error {
	for _, in := range ingredients {
		ingredientID, err := ResolveIngredient(tx, in.Name)
		if err != nil {
			return err
		}
		link := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredientID,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertSteps(tx *gorm.DB, recipeID string, steps []RecipeStepInput) error {
	for _, in := range steps {
		step := models.RecipeStep{
			RecipeID:    recipeID,
			StepNumber:  in.StepNumber,
			Instruction: in.Instruction,
		}
		if err := tx.Create(&step).Error; err != nil {
			return err
		}
	}
	return nil
}
