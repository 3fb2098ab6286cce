package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// MaxNameLength mirrors the varchar(50) columns of pizza and topping
const MaxNameLength = 50

type nameInput struct {
	Name string `validate:"required,max=50"`
}

// NewValidator returns the validator shared by the catalog services
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// normalizeName trims the submitted name and checks it against the field rules.
// Whitespace-only input counts as missing.
func normalizeName(v *validator.Validate, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	err := v.Struct(nameInput{Name: name})
	if err == nil {
		return name, nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Tag() {
		case "required":
			return "", &ValidationError{Field: "name", Message: "this field is required"}
		case "max":
			return "", &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxNameLength)}
		}
	}
	return "", &ValidationError{Field: "name", Message: err.Error()}
}

// nameTaken reports whether another row of model already uses name.
// exceptID excludes the row being renamed; zero means no exclusion.
func nameTaken(tx *gorm.DB, model interface{}, name string, exceptID uint) (bool, error) {
	var count int64
	q := tx.Model(model).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateWriteError maps storage-level unique violations to DuplicateError
// and leaves the service errors untouched.
func translateWriteError(err error, entity, name string) error {
	if IsValidation(err) || IsDuplicate(err) || IsNotFound(err) {
		return err
	}
	if isUniqueViolation(err) {
		return &DuplicateError{Entity: entity, Name: name}
	}
	return fmt.Errorf("%s write failed: %w", entity, err)
}
