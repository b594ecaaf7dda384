package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebook-backend/internal/config"
	"recipebook-backend/internal/models"
	"recipebook-backend/internal/types"
)

// AuthClaims is the JWT payload carried by bearer tokens
type AuthClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterUserInput carries the fields for a new user
type RegisterUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterUser hashes the password and inserts the user. A duplicate email
// surfaces as types.ErrDuplicateEmail.
func RegisterUser(db *gorm.DB, in RegisterUserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, types.ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

// AuthenticateUser checks the credentials and returns a signed token plus the
// user. A missing user and a wrong password are indistinguishable to the
// caller.
func AuthenticateUser(db *gorm.DB, cfg *config.Config, email, password string) (string, *models.User, error) {
	user, err := GetUserByEmail(db, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", nil, types.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, types.ErrInvalidCredentials
	}

	token, err := GenerateToken(cfg, user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GenerateToken issues an HS256 bearer token for the user
func GenerateToken(cfg *config.Config, userID, email string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.JWTExpiryMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    cfg.JWTIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateToken parses and verifies a bearer token, returning its claims
func ValidateToken(cfg *config.Config, tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GetUserByEmail fetches a user by exact email or types.ErrNotFound
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID fetches a user by identifier or types.ErrNotFound
func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
