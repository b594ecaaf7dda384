package utils

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance for request structs
var Validate *validator.Validate

// InitValidator initializes the shared validator
func InitValidator() {
	Validate = validator.New()
}
