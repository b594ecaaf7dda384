package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipebook-backend/internal/database"
	"recipebook-backend/internal/models"
	"recipebook-backend/internal/services"
	"recipebook-backend/internal/types"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Every pooled connection to :memory: is a distinct database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func createTestCuisine(t *testing.T, db *gorm.DB, name string) *models.Cuisine {
	t.Helper()
	cuisine := models.Cuisine{Name: name}
	if err := db.Create(&cuisine).Error; err != nil {
		t.Fatalf("Failed to create test cuisine: %v", err)
	}
	return &cuisine
}

// TestCreateAndGetRecipe creates a full aggregate and reads it back
func TestCreateAndGetRecipe(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")
	italian := createTestCuisine(t, db, "Italian")

	id, err := services.CreateRecipe(db, services.CreateRecipeInput{
		Name:        "Spaghetti Carbonara",
		Description: "Roman pasta with eggs and guanciale",
		AuthorID:    author.ID,
		CuisineIDs:  []string{italian.ID},
		Ingredients: []services.RecipeIngredientInput{
			{Name: "Spaghetti", Quantity: 400, Unit: "g"},
			{Name: "Guanciale", Quantity: 150, Unit: "g"},
			{Name: "Eggs", Quantity: 4, Unit: "pcs"},
		},
		Steps: []services.RecipeStepInput{
			{StepNumber: 2, Instruction: "Crisp the guanciale"},
			{StepNumber: 1, Instruction: "Boil the spaghetti"},
			{StepNumber: 3, Instruction: "Toss with beaten eggs off the heat"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	detail, err := services.GetRecipeByID(db, id)
	if err != nil {
		t.Fatalf("Failed to fetch recipe: %v", err)
	}

	if detail.Name != "Spaghetti Carbonara" {
		t.Errorf("Expected name 'Spaghetti Carbonara', got %q", detail.Name)
	}
	if detail.AuthorName != "Mario" {
		t.Errorf("Expected author name 'Mario', got %q", detail.AuthorName)
	}
	if len(detail.Cuisines) != 1 || detail.Cuisines[0].Name != "Italian" {
		t.Errorf("Expected one cuisine 'Italian', got %+v", detail.Cuisines)
	}
	if len(detail.Ingredients) != 3 {
		t.Errorf("Expected 3 ingredients, got %d", len(detail.Ingredients))
	}

	// Steps come back ordered by step number regardless of insert order
	if len(detail.Steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(detail.Steps))
	}
	for i, step := range detail.Steps {
		if step.StepNumber != i+1 {
			t.Errorf("Expected step %d at position %d, got %d", i+1, i, step.StepNumber)
		}
	}
}

// TestGetRecipeNotFound verifies the missing-root sentinel
func TestGetRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.GetRecipeByID(db, "no-such-id")
	if err != types.ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestCreateRecipeRollsBack verifies that a bad cuisine reference aborts the
// whole aggregate, leaving no partial rows behind
func TestCreateRecipeRollsBack(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")

	_, err := services.CreateRecipe(db, services.CreateRecipeInput{
		Name:       "Doomed",
		AuthorID:   author.ID,
		CuisineIDs: []string{"no-such-cuisine"},
		Steps: []services.RecipeStepInput{
			{StepNumber: 1, Instruction: "Never stored"},
		},
	})
	if err == nil {
		t.Fatal("Expected an error for a missing cuisine reference")
	}

	var recipeCount, stepCount int64
	db.Model(&models.Recipe{}).Count(&recipeCount)
	db.Model(&models.RecipeStep{}).Count(&stepCount)
	if recipeCount != 0 {
		t.Errorf("Expected 0 recipes after rollback, got %d", recipeCount)
	}
	if stepCount != 0 {
		t.Errorf("Expected 0 steps after rollback, got %d", stepCount)
	}
}

// TestIngredientCatalogReuse verifies two recipes naming the same ingredient
// share one catalog row
func TestIngredientCatalogReuse(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")

	for _, name := range []string{"First", "Second"} {
		_, err := services.CreateRecipe(db, services.CreateRecipeInput{
			Name:     name,
			AuthorID: author.ID,
			Ingredients: []services.RecipeIngredientInput{
				{Name: "Garlic", Quantity: 2, Unit: "cloves"},
			},
		})
		if err != nil {
			t.Fatalf("Failed to create recipe %q: %v", name, err)
		}
	}

	var count int64
	db.Model(&models.Ingredient{}).Where("name = ?", "Garlic").Count(&count)
	if count != 1 {
		t.Errorf("Expected a single 'Garlic' catalog row, got %d", count)
	}
}

// TestResolveIngredientIdempotent verifies repeated resolution returns the
// same identifier
func TestResolveIngredientIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := services.ResolveIngredient(db, "Basil")
	if err != nil {
		t.Fatalf("Failed to resolve ingredient: %v", err)
	}
	second, err := services.ResolveIngredient(db, "Basil")
	if err != nil {
		t.Fatalf("Failed to resolve ingredient again: %v", err)
	}
	if first != second {
		t.Errorf("Expected the same ingredient id, got %q and %q", first, second)
	}
}

// TestUpdateRecipeWholesaleReplace verifies supplied sub-collections replace
// the stored ones while omitted ones stay put
func TestUpdateRecipeWholesaleReplace(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")
	editor := createTestUser(t, db, "Luigi", "luigi@example.com")

	id, err := services.CreateRecipe(db, services.CreateRecipeInput{
		Name:     "Pesto",
		AuthorID: author.ID,
		Ingredients: []services.RecipeIngredientInput{
			{Name: "Basil", Quantity: 50, Unit: "g"},
			{Name: "Pine nuts", Quantity: 30, Unit: "g"},
		},
		Steps: []services.RecipeStepInput{
			{StepNumber: 1, Instruction: "Blend everything"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	newName := "Pesto Genovese"
	err = services.UpdateRecipe(db, id, services.UpdateRecipeInput{
		Name: &newName,
		Steps: []services.RecipeStepInput{
			{StepNumber: 1, Instruction: "Toast the pine nuts"},
			{StepNumber: 2, Instruction: "Blend with basil and oil"},
		},
	}, editor.ID)
	if err != nil {
		t.Fatalf("Failed to update recipe: %v", err)
	}

	detail, err := services.GetRecipeByID(db, id)
	if err != nil {
		t.Fatalf("Failed to fetch recipe: %v", err)
	}

	if detail.Name != "Pesto Genovese" {
		t.Errorf("Expected updated name, got %q", detail.Name)
	}
	if len(detail.Steps) != 2 {
		t.Errorf("Expected steps replaced with 2 rows, got %d", len(detail.Steps))
	}
	// Ingredients were omitted from the update and must be untouched
	if len(detail.Ingredients) != 2 {
		t.Errorf("Expected ingredients untouched (2 rows), got %d", len(detail.Ingredients))
	}

	// The editor is stamped on the row
	var recipe models.Recipe
	db.Where("id = ?", id).First(&recipe)
	if recipe.UpdatedBy != editor.ID {
		t.Errorf("Expected updated_by %q, got %q", editor.ID, recipe.UpdatedBy)
	}
	if recipe.CreatedBy != author.ID {
		t.Errorf("Expected created_by %q, got %q", author.ID, recipe.CreatedBy)
	}
}

// TestUpdateRecipeEmptySliceClears verifies an explicit empty slice removes
// every row of that sub-collection
func TestUpdateRecipeEmptySliceClears(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")

	id, err := services.CreateRecipe(db, services.CreateRecipeInput{
		Name:     "Toast",
		AuthorID: author.ID,
		Steps: []services.RecipeStepInput{
			{StepNumber: 1, Instruction: "Toast the bread"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	err = services.UpdateRecipe(db, id, services.UpdateRecipeInput{
		Steps: []services.RecipeStepInput{},
	}, author.ID)
	if err != nil {
		t.Fatalf("Failed to update recipe: %v", err)
	}

	detail, _ := services.GetRecipeByID(db, id)
	if len(detail.Steps) != 0 {
		t.Errorf("Expected 0 steps after clearing, got %d", len(detail.Steps))
	}
}

// TestUpdateRecipeNotFound verifies the sentinel for a missing recipe
func TestUpdateRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	name := "x"

	err := services.UpdateRecipe(db, "no-such-id", services.UpdateRecipeInput{Name: &name}, "editor")
	if err != types.ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestArchiveRecipeCascades verifies the delete removes dependent rows while
// shared catalog rows survive
func TestArchiveRecipeCascades(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")
	italian := createTestCuisine(t, db, "Italian")

	id, err := services.CreateRecipe(db, services.CreateRecipeInput{
		Name:       "Risotto",
		AuthorID:   author.ID,
		CuisineIDs: []string{italian.ID},
		Ingredients: []services.RecipeIngredientInput{
			{Name: "Arborio rice", Quantity: 300, Unit: "g"},
		},
		Steps: []services.RecipeStepInput{
			{StepNumber: 1, Instruction: "Stir until creamy"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	if err := services.ArchiveRecipe(db, id); err != nil {
		t.Fatalf("Failed to archive recipe: %v", err)
	}

	var stepCount, linkCount, cuisineLinkCount int64
	db.Model(&models.RecipeStep{}).Where("recipe_id = ?", id).Count(&stepCount)
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", id).Count(&linkCount)
	db.Model(&models.RecipeCuisine{}).Where("recipe_id = ?", id).Count(&cuisineLinkCount)
	if stepCount != 0 || linkCount != 0 || cuisineLinkCount != 0 {
		t.Errorf("Expected dependent rows removed, got steps=%d ingredients=%d cuisines=%d",
			stepCount, linkCount, cuisineLinkCount)
	}

	// The catalog survives the recipe
	var ingredientCount, cuisineCount int64
	db.Model(&models.Ingredient{}).Count(&ingredientCount)
	db.Model(&models.Cuisine{}).Count(&cuisineCount)
	if ingredientCount != 1 {
		t.Errorf("Expected the ingredient catalog row to survive, got %d rows", ingredientCount)
	}
	if cuisineCount != 1 {
		t.Errorf("Expected the cuisine to survive, got %d rows", cuisineCount)
	}

	if err := services.ArchiveRecipe(db, id); err != types.ErrNotFound {
		t.Errorf("Expected ErrNotFound on double archive, got %v", err)
	}
}

// TestListRecipesFilters exercises author, cuisine, and search filters
func TestListRecipesFilters(t *testing.T) {
	db := setupTestDB(t)
	mario := createTestUser(t, db, "Mario", "mario@example.com")
	luigi := createTestUser(t, db, "Luigi", "luigi@example.com")
	italian := createTestCuisine(t, db, "Italian")
	thai := createTestCuisine(t, db, "Thai")

	mustCreate := func(in services.CreateRecipeInput) string {
		t.Helper()
		id, err := services.CreateRecipe(db, in)
		if err != nil {
			t.Fatalf("Failed to create recipe %q: %v", in.Name, err)
		}
		return id
	}

	mustCreate(services.CreateRecipeInput{
		Name: "Carbonara", AuthorID: mario.ID, CuisineIDs: []string{italian.ID},
		Ingredients: []services.RecipeIngredientInput{{Name: "Guanciale", Quantity: 150, Unit: "g"}},
	})
	mustCreate(services.CreateRecipeInput{
		Name: "Pad Thai", AuthorID: luigi.ID, CuisineIDs: []string{thai.ID},
		Ingredients: []services.RecipeIngredientInput{{Name: "Rice noodles", Quantity: 200, Unit: "g"}},
	})
	mustCreate(services.CreateRecipeInput{
		Name: "Lasagna", AuthorID: mario.ID, CuisineIDs: []string{italian.ID},
	})

	// Author filter
	rows, total, err := services.ListRecipes(db, services.RecipeListFilter{AuthorID: mario.ID})
	if err != nil {
		t.Fatalf("Failed to list by author: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("Expected 2 recipes for Mario, got total=%d rows=%d", total, len(rows))
	}

	// Cuisine filter
	_, total, err = services.ListRecipes(db, services.RecipeListFilter{CuisineIDs: []string{thai.ID}})
	if err != nil {
		t.Fatalf("Failed to list by cuisine: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 Thai recipe, got %d", total)
	}

	// Search matches ingredient names too, case-insensitively
	rows, total, err = services.ListRecipes(db, services.RecipeListFilter{Search: "guanciale"})
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if total != 1 || rows[0].Name != "Carbonara" {
		t.Errorf("Expected ingredient search to find Carbonara, got total=%d rows=%+v", total, rows)
	}

	// Filters compose conjunctively
	_, total, err = services.ListRecipes(db, services.RecipeListFilter{
		AuthorID:   luigi.ID,
		CuisineIDs: []string{italian.ID},
	})
	if err != nil {
		t.Fatalf("Failed to list with combined filters: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected no Italian recipes by Luigi, got %d", total)
	}
}

// TestListRecipesPagination verifies the page math and that total ignores
// pagination
func TestListRecipesPagination(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		if _, err := services.CreateRecipe(db, services.CreateRecipeInput{
			Name: name, AuthorID: author.ID,
		}); err != nil {
			t.Fatalf("Failed to create recipe %q: %v", name, err)
		}
	}

	rows, total, err := services.ListRecipes(db, services.RecipeListFilter{
		SortBy: "name", SortDir: "asc", Page: 2, Limit: 2,
	})
	if err != nil {
		t.Fatalf("Failed to list page 2: %v", err)
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
	if len(rows) != 2 || rows[0].Name != "C" || rows[1].Name != "D" {
		t.Errorf("Expected page 2 to hold C and D, got %+v", rows)
	}

	// Out-of-range pages are empty, not an error
	rows, total, err = services.ListRecipes(db, services.RecipeListFilter{Page: 10, Limit: 2})
	if err != nil {
		t.Fatalf("Failed to list out-of-range page: %v", err)
	}
	if total != 5 || len(rows) != 0 {
		t.Errorf("Expected empty page with total 5, got total=%d rows=%d", total, len(rows))
	}

	// The limit is capped
	rows, _, err = services.ListRecipes(db, services.RecipeListFilter{Limit: 10000})
	if err != nil {
		t.Fatalf("Failed to list with oversized limit: %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("Expected 5 rows, got %d", len(rows))
	}
}

// TestListRecipesSortByAuthor verifies the author-name sort key
func TestListRecipesSortByAuthor(t *testing.T) {
	db := setupTestDB(t)
	zelda := createTestUser(t, db, "Zelda", "zelda@example.com")
	alice := createTestUser(t, db, "Alice", "alice@example.com")

	for _, tc := range []struct {
		name   string
		author string
	}{
		{"Stew", zelda.ID},
		{"Salad", alice.ID},
	} {
		if _, err := services.CreateRecipe(db, services.CreateRecipeInput{
			Name: tc.name, AuthorID: tc.author,
		}); err != nil {
			t.Fatalf("Failed to create recipe %q: %v", tc.name, err)
		}
	}

	rows, _, err := services.ListRecipes(db, services.RecipeListFilter{SortBy: "author", SortDir: "asc"})
	if err != nil {
		t.Fatalf("Failed to list sorted by author: %v", err)
	}
	if len(rows) != 2 || rows[0].AuthorName != "Alice" || rows[1].AuthorName != "Zelda" {
		t.Errorf("Expected Alice before Zelda, got %+v", rows)
	}
}

// TestGroupedByCuisine verifies grouping, counts, and that empty cuisines are
// excluded
func TestGroupedByCuisine(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")
	italian := createTestCuisine(t, db, "Italian")
	createTestCuisine(t, db, "Unused")

	for _, name := range []string{"Carbonara", "Lasagna"} {
		if _, err := services.CreateRecipe(db, services.CreateRecipeInput{
			Name: name, AuthorID: author.ID, CuisineIDs: []string{italian.ID},
		}); err != nil {
			t.Fatalf("Failed to create recipe %q: %v", name, err)
		}
	}

	groups, err := services.ListRecipesGroupedByCuisine(db)
	if err != nil {
		t.Fatalf("Failed to group by cuisine: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group (empty cuisines excluded), got %d", len(groups))
	}
	if groups[0].CuisineName != "Italian" || groups[0].RecipeCount != 2 {
		t.Errorf("Expected Italian with 2 recipes, got %+v", groups[0])
	}
	if len(groups[0].Recipes) != 2 {
		t.Errorf("Expected 2 recipe headers, got %d", len(groups[0].Recipes))
	}
}

// TestDeleteCuisineDetaches verifies deleting a cuisine strips it from
// recipes without touching the recipes themselves
func TestDeleteCuisineDetaches(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")
	italian := createTestCuisine(t, db, "Italian")

	id, err := services.CreateRecipe(db, services.CreateRecipeInput{
		Name: "Carbonara", AuthorID: author.ID, CuisineIDs: []string{italian.ID},
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	if err := services.DeleteCuisine(db, italian.ID); err != nil {
		t.Fatalf("Failed to delete cuisine: %v", err)
	}

	detail, err := services.GetRecipeByID(db, id)
	if err != nil {
		t.Fatalf("Expected the recipe to survive, got %v", err)
	}
	if len(detail.Cuisines) != 0 {
		t.Errorf("Expected the cuisine detached, got %+v", detail.Cuisines)
	}

	if err := services.DeleteCuisine(db, italian.ID); err != types.ErrNotFound {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}
}

// TestCuisineDuplicateName verifies the unique name constraint surfaces as a
// constraint error
func TestCuisineDuplicateName(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.CreateCuisine(db, services.CreateCuisineInput{Name: "Italian"}); err != nil {
		t.Fatalf("Failed to create cuisine: %v", err)
	}

	_, err := services.CreateCuisine(db, services.CreateCuisineInput{Name: "Italian"})
	if !types.IsConstraint(err) {
		t.Errorf("Expected a constraint error for duplicate name, got %v", err)
	}
}

// TestUpdateCuisinePartial verifies nil fields are untouched
func TestUpdateCuisinePartial(t *testing.T) {
	db := setupTestDB(t)
	desc := "Original description"
	id, err := services.CreateCuisine(db, services.CreateCuisineInput{Name: "Thai", Description: &desc})
	if err != nil {
		t.Fatalf("Failed to create cuisine: %v", err)
	}

	newName := "Thai (Central)"
	if err := services.UpdateCuisine(db, id, services.UpdateCuisineInput{Name: &newName}); err != nil {
		t.Fatalf("Failed to update cuisine: %v", err)
	}

	cuisine, err := services.GetCuisineByID(db, id)
	if err != nil {
		t.Fatalf("Failed to fetch cuisine: %v", err)
	}
	if cuisine.Name != "Thai (Central)" {
		t.Errorf("Expected renamed cuisine, got %q", cuisine.Name)
	}
	if cuisine.Description == nil || *cuisine.Description != "Original description" {
		t.Errorf("Expected description untouched, got %v", cuisine.Description)
	}
}

// TestReplaceIngredientsReusesCatalog verifies replacing a recipe's
// ingredient list changes the quantity without growing the catalog
func TestReplaceIngredientsReusesCatalog(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")

	id, err := services.CreateRecipe(db, services.CreateRecipeInput{
		Name:     "Carbonara",
		AuthorID: author.ID,
		Ingredients: []services.RecipeIngredientInput{
			{Name: "Pasta", Quantity: 400, Unit: "grams"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	err = services.UpdateRecipe(db, id, services.UpdateRecipeInput{
		Ingredients: []services.RecipeIngredientInput{
			{Name: "Pasta", Quantity: 500, Unit: "grams"},
		},
	}, author.ID)
	if err != nil {
		t.Fatalf("Failed to update recipe: %v", err)
	}

	detail, err := services.GetRecipeByID(db, id)
	if err != nil {
		t.Fatalf("Failed to fetch recipe: %v", err)
	}
	if len(detail.Ingredients) != 1 || detail.Ingredients[0].Quantity != 500 {
		t.Errorf("Expected one ingredient with quantity 500, got %+v", detail.Ingredients)
	}

	var count int64
	db.Model(&models.Ingredient{}).Where("name = ?", "Pasta").Count(&count)
	if count != 1 {
		t.Errorf("Expected a single 'Pasta' catalog row, got %d", count)
	}
}

// TestAddRecipePhoto verifies photo rows attach to existing recipes only
func TestAddRecipePhoto(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Mario", "mario@example.com")

	id, err := services.CreateRecipe(db, services.CreateRecipeInput{
		Name: "Carbonara", AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	photo, err := services.AddRecipePhoto(db, id, "abc.jpg", "/uploads/abc.jpg", services.PhotoMeta{
		OriginalName: "dinner.jpg", MimeType: "image/jpeg", SizeBytes: 1234,
	})
	if err != nil {
		t.Fatalf("Failed to add photo: %v", err)
	}
	if photo.ID == "" || photo.RecipeID != id {
		t.Errorf("Expected a persisted photo for recipe %q, got %+v", id, photo)
	}

	_, err = services.AddRecipePhoto(db, "no-such-recipe", "x.jpg", "/uploads/x.jpg", services.PhotoMeta{})
	if err != types.ErrNotFound {
		t.Errorf("Expected ErrNotFound for a missing recipe, got %v", err)
	}

	photos, err := services.ListRecipePhotos(db, id)
	if err != nil {
		t.Fatalf("Failed to list photos: %v", err)
	}
	if len(photos) != 1 {
		t.Errorf("Expected 1 photo, got %d", len(photos))
	}

	// Archiving the recipe removes its photo rows
	if err := services.ArchiveRecipe(db, id); err != nil {
		t.Fatalf("Failed to archive recipe: %v", err)
	}
	var count int64
	db.Model(&models.RecipePhoto{}).Where("recipe_id = ?", id).Count(&count)
	if count != 0 {
		t.Errorf("Expected photo rows removed with the recipe, got %d", count)
	}
}
