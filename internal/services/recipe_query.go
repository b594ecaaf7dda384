package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"recipebook-backend/internal/models"
	"recipebook-backend/internal/types"
)

const (
	// DefaultListLimit is the page size when the caller does not ask for one
	DefaultListLimit = 20
	// MaxListLimit caps the page size
	MaxListLimit = 100
)

// RecipeListFilter describes the list query. All filters compose
// conjunctively; the cuisine set matches OR-wise within itself.
type RecipeListFilter struct {
	AuthorID   string
	CuisineIDs []string
	Search     string
	SortBy     string // name | created_at | updated_at | author
	SortDir    string // asc | desc
	Page       int    // 1-based
	Limit      int
}

// RecipeRow is the list projection: the recipe header, the author's display
// name, and the names of the associated cuisines.
type RecipeRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Cuisines    []string  `json:"cuisines"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CuisineRef is a cuisine as it appears inside a recipe aggregate
type CuisineRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecipeStepView is a step as it appears inside a recipe aggregate
type RecipeStepView struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

// RecipeIngredientView is a quantified ingredient inside a recipe aggregate
type RecipeIngredientView struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

// RecipePhotoView is an uploaded photo inside a recipe aggregate
type RecipePhotoView struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// RecipeDetail is the full aggregate returned by GetRecipeByID
type RecipeDetail struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	AuthorID    string                 `json:"author_id"`
	AuthorName  string                 `json:"author_name"`
	Cuisines    []CuisineRef           `json:"cuisines"`
	Steps       []RecipeStepView       `json:"steps"`
	Ingredients []RecipeIngredientView `json:"ingredients"`
	Photos      []RecipePhotoView      `json:"photos"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// GroupedRecipe is a recipe as it appears in the grouped-by-cuisine view
type GroupedRecipe struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CuisineGroup is one cuisine and its recipes in the grouped view
type CuisineGroup struct {
	CuisineID   string          `json:"cuisine_id"`
	CuisineName string          `json:"cuisine_name"`
	RecipeCount int             `json:"recipe_count"`
	Recipes     []GroupedRecipe `json:"recipes"`
}

// sortColumns is the fixed set of allowed sort keys
var sortColumns = map[string]string{
	"name":       "recipes.name",
	"created_at": "recipes.created_at",
	"updated_at": "recipes.updated_at",
	"author":     "users.name",
}

// ListRecipes returns one page of recipes matching the filter plus the total
// matching count ignoring pagination. Ties beyond the sort key are not
// broken; relative order of equal rows is unspecified.
func ListRecipes(db *gorm.DB, f RecipeListFilter) ([]RecipeRow, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}

	query := db.Model(&models.Recipe{})

	if f.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", f.AuthorID)
	}
	if len(f.CuisineIDs) > 0 {
		query = query.Where(
			"recipes.id IN (SELECT recipe_id FROM recipe_cuisines WHERE cuisine_id IN ?)",
			f.CuisineIDs,
		)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			`LOWER(recipes.name) LIKE ? OR LOWER(recipes.description) LIKE ? OR recipes.id IN (
				SELECT ri.recipe_id FROM recipe_ingredients ri
				JOIN ingredients i ON i.id = ri.ingredient_id
				WHERE LOWER(i.name) LIKE ?)`,
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = sortColumns["created_at"]
	}
	direction := "ASC"
	if strings.EqualFold(f.SortDir, "desc") {
		direction = "DESC"
	}

	query = query.Select("recipes.*").
		Preload("Author").
		Preload("CuisineLinks.Cuisine")
	if column == "users.name" {
		query = query.Joins("LEFT JOIN users ON users.id = recipes.author_id")
	}

	var recipes []models.Recipe
	offset := (f.Page - 1) * f.Limit
	err := query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(offset).
		Limit(f.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]RecipeRow, 0, len(recipes))
	for _, r := range recipes {
		cuisines := make([]string, 0, len(r.CuisineLinks))
		for _, link := range r.CuisineLinks {
			cuisines = append(cuisines, link.Cuisine.Name)
		}
		rows = append(rows, RecipeRow{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			AuthorID:    r.AuthorID,
			AuthorName:  r.Author.Name,
			Cuisines:    cuisines,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}

	return rows, total, nil
}

// ListRecipesByCuisine is ListRecipes with the cuisine filter forced to the
// single given cuisine; the remaining filter options still apply.
func ListRecipesByCuisine(db *gorm.DB, cuisineID string, f RecipeListFilter) ([]RecipeRow, int64, error) {
	f.CuisineIDs = []string{cuisineID}
	return ListRecipes(db, f)
}

// GetRecipeByID fetches the full aggregate: header, author name, cuisines,
// steps ordered by step_number, quantified ingredients, and photos. Returns
// types.ErrNotFound when the root row is absent; nested collections are
// never partially populated.
func GetRecipeByID(db *gorm.DB, id string) (*RecipeDetail, error) {
	var recipe models.Recipe
	err := db.
		Preload("Author").
		Preload("CuisineLinks.Cuisine").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_steps.step_number ASC")
		}).
		Preload("IngredientLinks.Ingredient").
		Preload("Photos").
		Where("id = ?", id).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	detail := RecipeDetail{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Description: recipe.Description,
		AuthorID:    recipe.AuthorID,
		AuthorName:  recipe.Author.Name,
		Cuisines:    make([]CuisineRef, 0, len(recipe.CuisineLinks)),
		Steps:       make([]RecipeStepView, 0, len(recipe.Steps)),
		Ingredients: make([]RecipeIngredientView, 0, len(recipe.IngredientLinks)),
		Photos:      make([]RecipePhotoView, 0, len(recipe.Photos)),
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
	for _, link := range recipe.CuisineLinks {
		detail.Cuisines = append(detail.Cuisines, CuisineRef{ID: link.CuisineID, Name: link.Cuisine.Name})
	}
	for _, step := range recipe.Steps {
		detail.Steps = append(detail.Steps, RecipeStepView{StepNumber: step.StepNumber, Instruction: step.Instruction})
	}
	for _, link := range recipe.IngredientLinks {
		detail.Ingredients = append(detail.Ingredients, RecipeIngredientView{
			IngredientID: link.IngredientID,
			Name:         link.Ingredient.Name,
			Quantity:     link.Quantity,
			Unit:         link.Unit,
		})
	}
	for _, photo := range recipe.Photos {
		detail.Photos = append(detail.Photos, RecipePhotoView{ID: photo.ID, URL: photo.URL})
	}

	return &detail, nil
}

// ListRecipesGroupedByCuisine returns every cuisine that has at least one
// recipe, with its recipe count and the flattened recipe headers. Cuisines
// with zero recipes are excluded by the inner join; use ListCuisines for the
// complete catalog.
func ListRecipesGroupedByCuisine(db *gorm.DB) ([]CuisineGroup, error) {
	var flat []struct {
		CuisineID         string
		CuisineName       string
		RecipeID          string
		RecipeName        string
		RecipeDescription string
	}

	err := db.Table("cuisines").
		Select(`cuisines.id AS cuisine_id, cuisines.name AS cuisine_name,
			recipes.id AS recipe_id, recipes.name AS recipe_name,
			recipes.description AS recipe_description`).
		Joins("JOIN recipe_cuisines ON recipe_cuisines.cuisine_id = cuisines.id").
		Joins("JOIN recipes ON recipes.id = recipe_cuisines.recipe_id").
		Order("cuisines.name ASC, recipes.name ASC").
		Scan(&flat).Error
	if err != nil {
		return nil, err
	}

	groups := make([]CuisineGroup, 0)
	index := make(map[string]int)
	for _, row := range flat {
		i, seen := index[row.CuisineID]
		if !seen {
			i = len(groups)
			index[row.CuisineID] = i
			groups = append(groups, CuisineGroup{
				CuisineID:   row.CuisineID,
				CuisineName: row.CuisineName,
			})
		}
		groups[i].Recipes = append(groups[i].Recipes, GroupedRecipe{
			ID:          row.RecipeID,
			Name:        row.RecipeName,
			Description: row.RecipeDescription,
		})
		groups[i].RecipeCount++
	}

	return groups, nil
}
