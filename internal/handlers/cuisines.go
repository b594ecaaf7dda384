package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"recipebook-backend/internal/services"
	"recipebook-backend/internal/types"
	"recipebook-backend/internal/utils"
)

// CuisineHandler handles cuisine routes
type CuisineHandler struct {
	DB *gorm.DB
}

// ListCuisines handles GET /api/cuisines
// @Summary List cuisines
// @Description All cuisines ordered by name, including unused ones
// @Tags Cuisines
// @Produce json
// @Success 200 {array} models.Cuisine
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /cuisines [get]
func (h *CuisineHandler) ListCuisines(c *fiber.Ctx) error {
	cuisines, err := services.ListCuisines(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listCuisines")
	}

	return c.Status(fiber.StatusOK).JSON(cuisines)
}

// GetCuisine handles GET /api/cuisines/:id
// @Summary Get one cuisine
// @Tags Cuisines
// @Produce json
// @Param id path string true "Cuisine id"
// @Success 200 {object} models.Cuisine
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /cuisines/{id} [get]
func (h *CuisineHandler) GetCuisine(c *fiber.Ctx) error {
	cuisine, err := services.GetCuisineByID(h.DB, c.Params("id"))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Cuisine not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getCuisine")
	}

	return c.Status(fiber.StatusOK).JSON(cuisine)
}

// CreateCuisine handles POST /api/cuisines
// @Summary Create a cuisine
// @Tags Cuisines
// @Accept json
// @Produce json
// @Param cuisine body services.CreateCuisineInput true "Cuisine"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /cuisines [post]
func (h *CuisineHandler) CreateCuisine(c *fiber.Ctx) error {
	var input services.CreateCuisineInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Malformed request body")
	}
	if err := utils.Validate.Struct(input); err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	id, err := services.CreateCuisine(h.DB, input)
	if err != nil {
		if types.IsConstraint(err) {
			return utils.ConflictResponse(c, "Cuisine name already exists")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createCuisine")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "ok": true})
}

// UpdateCuisine handles PUT /api/cuisines/:id
// @Summary Update a cuisine
// @Tags Cuisines
// @Accept json
// @Produce json
// @Param id path string true "Cuisine id"
// @Param cuisine body services.UpdateCuisineInput true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /cuisines/{id} [put]
func (h *CuisineHandler) UpdateCuisine(c *fiber.Ctx) error {
	id := c.Params("id")

	var input services.UpdateCuisineInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Malformed request body")
	}

	if err := services.UpdateCuisine(h.DB, id, input); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Cuisine not found")
		}
		if types.IsConstraint(err) {
			return utils.ConflictResponse(c, "Cuisine name already exists")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateCuisine")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id, "ok": true})
}

// DeleteCuisine handles DELETE /api/cuisines/:id
// @Summary Delete a cuisine
// @Description Remove a cuisine and detach it from every recipe
// @Tags Cuisines
// @Produce json
// @Param id path string true "Cuisine id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /cuisines/{id} [delete]
func (h *CuisineHandler) DeleteCuisine(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := services.DeleteCuisine(h.DB, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Cuisine not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteCuisine")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "message": "Cuisine deleted"})
}

// RecipesByCuisine handles GET /api/cuisines/:id/recipes
// @Summary List recipes for one cuisine
// @Tags Cuisines
// @Produce json
// @Param id path string true "Cuisine id"
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size, max 100" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /cuisines/{id}/recipes [get]
func (h *CuisineHandler) RecipesByCuisine(c *fiber.Ctx) error {
	id := c.Params("id")

	// 404 for a cuisine that does not exist rather than an empty page
	if _, err := services.GetCuisineByID(h.DB, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Cuisine not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "recipesByCuisine")
	}

	filter := parseListFilter(c)
	rows, total, err := services.ListRecipesByCuisine(h.DB, id, filter)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "recipesByCuisine")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"recipes": rows,
		"total":   total,
		"page":    filter.Page,
		"limit":   filter.Limit,
	})
}
