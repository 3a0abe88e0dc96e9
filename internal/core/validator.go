package core

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"courtnotify/internal/types"
)

// Validator wraps go-playground/validator and translates validation
// failures into the platform error taxonomy.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator with JSON tag names reported in
// error details, so clients see the field names they actually sent.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct validates the struct tags on req and returns a
// *types.AppError describing every failing field, or nil when valid.
//
// The error code reflects the first failure: "required" maps to the
// missing-field code, "email" to the invalid-email code, and anything
// else to the malformed-payload code.
func (v *Validator) ValidateStruct(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"validation target must be a struct",
			err,
		)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return types.NewAppError(
			types.ErrCodeValidationBadPayload,
			"request validation failed",
			err,
		)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = failureReason(fe)
	}

	first := fieldErrs[0]
	return types.NewAppErrorWithDetails(
		codeForTag(first.Tag()),
		"invalid value for field '"+first.Field()+"'",
		err,
		details,
	)
}

// codeForTag maps a validation tag to the platform error code.
func codeForTag(tag string) types.ErrorCode {
	switch tag {
	case "required":
		return types.ErrCodeValidationMissingField
	case "email":
		return types.ErrCodeValidationInvalidEmail
	default:
		return types.ErrCodeValidationBadPayload
	}
}

// failureReason produces a short human-readable description of a single
// field failure for the error details map.
func failureReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " items or characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	default:
		return "failed validation rule '" + fe.Tag() + "'"
	}
}
