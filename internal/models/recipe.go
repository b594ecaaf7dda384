package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the aggregate root. Steps and the cuisine/ingredient association
// rows live and die with it (ON DELETE CASCADE); shared Cuisine and Ingredient
// rows are never touched by a recipe delete.
type Recipe struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	AuthorID    string    `gorm:"type:char(36);not null;index" json:"author_id"`
	CreatedBy   string    `gorm:"type:char(36);not null" json:"created_by"`
	UpdatedBy   string    `gorm:"type:char(36);not null" json:"updated_by"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Author          User               `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Creator         User               `gorm:"foreignKey:CreatedBy" json:"-"`
	Editor          User               `gorm:"foreignKey:UpdatedBy" json:"-"`
	Steps           []RecipeStep       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
	IngredientLinks []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	CuisineLinks    []RecipeCuisine    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"cuisines,omitempty"`
	Photos          []RecipePhoto      `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

// RecipeStep is one ordered instruction of a recipe. (recipe_id, step_number)
// is unique; numbering is taken from the caller as-is.
type RecipeStep struct {
	ID          string `gorm:"type:char(36);primaryKey" json:"id"`
	RecipeID    string `gorm:"type:char(36);not null;index:idx_recipe_step,unique" json:"recipe_id"`
	StepNumber  int    `gorm:"not null;index:idx_recipe_step,unique" json:"step_number"`
	Instruction string `gorm:"type:text;not null" json:"instruction"`
}

// RecipeIngredient associates a catalog ingredient with a recipe, carrying
// the quantity and free-text unit. An ingredient appears at most once per recipe.
type RecipeIngredient struct {
	ID           string  `gorm:"type:char(36);primaryKey" json:"id"`
	RecipeID     string  `gorm:"type:char(36);not null;index:idx_recipe_ingredient,unique" json:"recipe_id"`
	IngredientID string  `gorm:"type:char(36);not null;index:idx_recipe_ingredient,unique" json:"ingredient_id"`
	Quantity     float64 `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Unit         string  `gorm:"size:64" json:"unit"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// RecipeCuisine associates a recipe with a cuisine
type RecipeCuisine struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	RecipeID  string `gorm:"type:char(36);not null;index:idx_recipe_cuisine,unique;index" json:"recipe_id"`
	CuisineID string `gorm:"type:char(36);not null;index:idx_recipe_cuisine,unique;index" json:"cuisine_id"`

	Cuisine Cuisine `gorm:"foreignKey:CuisineID" json:"cuisine,omitempty"`
}

// BeforeCreate assigns a UUID if the caller did not supply one
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a UUID if the caller did not supply one
func (s *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a UUID if the caller did not supply one
func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == "" {
		ri.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a UUID if the caller did not supply one
func (rc *RecipeCuisine) BeforeCreate(tx *gorm.DB) error {
	if rc.ID == "" {
		rc.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// TableName overrides the table name for RecipeStep
func (RecipeStep) TableName() string {
	return "recipe_steps"
}

// TableName overrides the table name for RecipeIngredient
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// TableName overrides the table name for RecipeCuisine
func (RecipeCuisine) TableName() string {
	return "recipe_cuisines"
}
