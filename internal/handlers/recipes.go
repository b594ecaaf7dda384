package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"recipebook-backend/internal/services"
	"recipebook-backend/internal/types"
	"recipebook-backend/internal/utils"
)

// RecipeHandler handles recipe routes
type RecipeHandler struct {
	DB *gorm.DB
}

// ListRecipes handles GET /api/recipes
// @Summary List recipes
// @Description List recipes with optional author, cuisine, and free-text filters
// @Tags Recipes
// @Produce json
// @Param author query string false "Author user id"
// @Param cuisines query string false "Comma-separated cuisine ids (OR within the set)"
// @Param q query string false "Case-insensitive search over name, description, and ingredient names"
// @Param sort_by query string false "Sort key: name | created_at | updated_at | author" default(created_at)
// @Param sort_dir query string false "Sort direction: asc | desc" default(desc)
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size, max 100" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c *fiber.Ctx) error {
	filter := parseListFilter(c)

	rows, total, err := services.ListRecipes(h.DB, filter)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listRecipes")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"recipes": rows,
		"total":   total,
		"page":    filter.Page,
		"limit":   filter.Limit,
	})
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Get one recipe
// @Description Get a recipe with its author, cuisines, ordered steps, and ingredients
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe id"
// @Success 200 {object} services.RecipeDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	id := c.Params("id")

	detail, err := services.GetRecipeByID(h.DB, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Recipe not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getRecipe")
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

// CreateRecipe handles POST /api/recipes
// @Summary Create a recipe
// @Description Create a recipe with cuisines, ingredients, and steps as one unit
// @Tags Recipes
// @Accept json
// @Produce json
// @Param recipe body services.CreateRecipeInput true "Recipe"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var input services.CreateRecipeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Malformed request body")
	}
	if err := utils.Validate.Struct(input); err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	input.AuthorID = authenticatedUser(c)

	id, err := services.CreateRecipe(h.DB, input)
	if err != nil {
		if types.IsConstraint(err) {
			return utils.ConflictResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createRecipe")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "ok": true})
}

// UpdateRecipe handles PUT /api/recipes/:id
// @Summary Update a recipe
// @Description Partially update scalar fields; supplied sub-collections replace the stored ones wholesale
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path string true "Recipe id"
// @Param recipe body services.UpdateRecipeInput true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id := c.Params("id")
	editorID := authenticatedUser(c)

	if err := h.requireAuthor(c, id, editorID); err != nil {
		return err
	}

	var input services.UpdateRecipeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Malformed request body")
	}
	if err := utils.Validate.Struct(input); err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	if err := services.UpdateRecipe(h.DB, id, input, editorID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Recipe not found")
		}
		if types.IsConstraint(err) {
			return utils.ConflictResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateRecipe")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id, "ok": true})
}

// DeleteRecipe handles DELETE /api/recipes/:id
// @Summary Delete a recipe
// @Description Delete a recipe; its steps, photos, and associations go with it
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.requireAuthor(c, id, authenticatedUser(c)); err != nil {
		return err
	}

	if err := services.ArchiveRecipe(h.DB, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Recipe not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteRecipe")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "message": "Recipe deleted"})
}

// GroupedByCuisine handles GET /api/recipes/grouped-by-cuisine
// @Summary Recipes grouped by cuisine
// @Description Every cuisine with at least one recipe, with counts and recipe headers
// @Tags Recipes
// @Produce json
// @Success 200 {array} services.CuisineGroup
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/grouped-by-cuisine [get]
func (h *RecipeHandler) GroupedByCuisine(c *fiber.Ctx) error {
	groups, err := services.ListRecipesGroupedByCuisine(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "groupedByCuisine")
	}

	return c.Status(fiber.StatusOK).JSON(groups)
}

// requireAuthor rejects the request unless userID is the recipe's author
func (h *RecipeHandler) requireAuthor(c *fiber.Ctx, recipeID, userID string) error {
	detail, err := services.GetRecipeByID(h.DB, recipeID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Recipe not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "requireAuthor")
	}
	if detail.AuthorID != userID {
		return utils.ErrorResponse(c, "Only the recipe author may modify it", fiber.StatusForbidden, "auth")
	}
	return nil
}
