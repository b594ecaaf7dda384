package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"recipebook-backend/internal/config"
	"recipebook-backend/internal/services"
	"recipebook-backend/internal/types"
	"recipebook-backend/internal/utils"
)

// AuthHandler handles registration, login, and profile routes
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create a user account with a unique email
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body services.RegisterUserInput true "User"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Malformed request body")
	}
	if err := utils.Validate.Struct(input); err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	user, err := services.RegisterUser(h.DB, input)
	if err != nil {
		if errors.Is(err, types.ErrDuplicateEmail) {
			return utils.ConflictResponse(c, "Email is already registered")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"ok":    true,
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange email and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ValidationErrorResponse(c, "Malformed request body")
	}
	if err := utils.Validate.Struct(input); err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	token, user, err := services.AuthenticateUser(h.DB, h.Cfg, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid email or password", fiber.StatusUnauthorized, "auth")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Profile handles GET /api/auth/profile
// @Summary Current user profile
// @Description Return the account belonging to the bearer token
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := services.GetUserByID(h.DB, authenticatedUser(c))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "profile")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
