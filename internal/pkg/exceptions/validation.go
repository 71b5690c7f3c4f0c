package exceptions

import (
	"labcore-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validationMessages = map[string]string{
	"required": "is required",
	"oneof":    "must be one of %s",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gt":       "must be greater than %s",
	"gte":      "must be at least %s",

	"specimen_condition": "is not a recognized specimen condition",
	"rejection_reason":   "is not a recognized rejection reason",
	"line_item_status":   "is not a recognized test status",
	"priority":           "must be routine, urgent or stat",
}

var tagsWithParams = map[string]bool{
	"oneof": true,
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}

	firstErr := validationErrors[0]
	fieldName := strings.ToLower(firstErr.Field())
	tag := firstErr.Tag()
	message, found := validationMessages[tag]
	if !found {
		message = "is invalid"
	}
	if tagsWithParams[tag] {
		if tag == "oneof" {
			message = strings.Replace(message, "%s", strings.Join(strings.Fields(firstErr.Param()), ", "), 1)
		} else {
			message = strings.Replace(message, "%s", firstErr.Param(), 1)
		}
	}
	return fieldName + " " + message
}
