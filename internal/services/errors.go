package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"recipebook-backend/internal/types"
)

// isUniqueViolation reports whether err is a UNIQUE constraint failure, as
// opposed to any other write error. The message check covers driver errors
// that escape GORM's translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isConstraintViolation reports whether err is any integrity violation
// (uniqueness, foreign key, check)
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "constraint failed")
}

// classifyWriteError maps integrity violations to ConstraintError and passes
// everything else through unchanged
func classifyWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrNotFound) || types.IsConstraint(err) {
		return err
	}
	if isConstraintViolation(err) {
		return &types.ConstraintError{Op: op, Err: err}
	}
	return err
}
