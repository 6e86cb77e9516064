package models

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/velardesign/portfolio-backend/errs"
)

// Single validation contract for the write path. Both the create and the
// patch payloads run through the same validator instance, so the rules
// cannot drift between the two.
var validate = newValidator()

var imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp)$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// field errors reference the JSON keys clients actually send
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterValidation("image_url", func(fl validator.FieldLevel) bool {
		return imageURLPattern.MatchString(fl.Field().String())
	})
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// fieldMessages mirrors the client-facing validation copy field by field.
var fieldMessages = map[string]string{
	"title":       "Title must be between 1 and 100 characters",
	"category":    "Invalid category",
	"description": "Description must be between 10 and 500 characters",
	"image":       "Must be a valid image URL",
	"thumbnail":   "Must be a valid URL",
	"status":      "Invalid status",
	"projectUrl":  "Must be a valid URL",
}

// ValidateProject checks a full project body on create. A missing required
// field collapses to the single wire message the admin UI keys on; any other
// violation surfaces a field-level message.
func ValidateProject(p *Project) error {
	return translate(validate.Struct(p))
}

// ValidatePatch checks only the fields present in an edit payload.
func ValidatePatch(patch *ProjectPatch) error {
	return translate(validate.Struct(patch))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.NewBadRequestError("malformed request body")
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return errs.NewMissingFieldsError()
		}
	}
	fe := fieldErrs[0]
	msg, ok := fieldMessages[fe.Field()]
	if !ok {
		msg = "Invalid value"
	}
	return errs.NewValidationError(fe.Field(), msg)
}
