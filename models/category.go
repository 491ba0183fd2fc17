package models

import (
	"unicode"

	"github.com/go-playground/validator"
)

// ValidateCategory rejects control characters; any other text is a category.
func ValidateCategory(fl validator.FieldLevel) bool {
	return ValidateCategoryRaw(fl.Field().String())
}

// ValidateCategoryRaw allows whitespace (tabs, NBSP) so blank input can fall
// back to the default category.
func ValidateCategoryRaw(value string) bool {
	for _, r := range value {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
