package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebook-backend/internal/config"
	"recipebook-backend/internal/services"
	"recipebook-backend/internal/types"
	"recipebook-backend/internal/utils"
)

// UploadHandler handles recipe photo uploads
type UploadHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadPhoto handles POST /api/recipes/:id/photos
// @Summary Upload a recipe photo
// @Description Accept a multipart image, store it on disk, and attach it to the recipe
// @Tags Recipes
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Recipe id"
// @Param photo formData file true "Image file"
// @Success 201 {object} models.RecipePhoto
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 413 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/photos [post]
func (h *UploadHandler) UploadPhoto(c *fiber.Ctx) error {
	recipeID := c.Params("id")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Missing 'photo' form file")
	}

	maxBytes := int64(h.Cfg.MaxUploadSizeMB) * 1024 * 1024
	if fileHeader.Size > maxBytes {
		return utils.ErrorResponse(c,
			fmt.Sprintf("File exceeds the %d MB limit", h.Cfg.MaxUploadSizeMB),
			fiber.StatusRequestEntityTooLarge, "upload")
	}

	mimeType := fileHeader.Header.Get(fiber.HeaderContentType)
	ext, ok := allowedImageTypes[strings.ToLower(mimeType)]
	if !ok {
		return utils.ValidationErrorResponse(c, "Unsupported image type "+mimeType)
	}

	fileName := uuid.NewString() + ext
	dest := filepath.Join(h.Cfg.UploadDir, fileName)
	if err := c.SaveFile(fileHeader, dest); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "upload")
	}

	photo, err := services.AddRecipePhoto(h.DB, recipeID, fileName, "/uploads/"+fileName, services.PhotoMeta{
		OriginalName: fileHeader.Filename,
		MimeType:     mimeType,
		SizeBytes:    fileHeader.Size,
	})
	if err != nil {
		// The file was already written; do not leave it orphaned
		_ = os.Remove(dest)
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Recipe not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "upload")
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

// ListPhotos handles GET /api/recipes/:id/photos
// @Summary List a recipe's photos
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe id"
// @Success 200 {array} models.RecipePhoto
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/{id}/photos [get]
func (h *UploadHandler) ListPhotos(c *fiber.Ctx) error {
	photos, err := services.ListRecipePhotos(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listPhotos")
	}

	return c.Status(fiber.StatusOK).JSON(photos)
}
