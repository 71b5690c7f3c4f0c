package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("specimen_condition", validateSpecimenCondition)
	validate.RegisterValidation("rejection_reason", validateRejectionReason)
	validate.RegisterValidation("line_item_status", validateLineItemStatus)
	validate.RegisterValidation("priority", validatePriority)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSpecimenCondition(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "good", "hemolyzed", "clotted", "insufficient", "contaminated", "fair", "poor":
		return true
	}
	return false
}

func validateRejectionReason(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "hemolyzed", "clotted", "insufficient", "wrong_tube", "unlabeled",
		"mislabeled", "contaminated", "expired", "temperature", "other":
		return true
	}
	return false
}

func validateLineItemStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "collected", "processing", "completed", "cancelled":
		return true
	}
	return false
}

func validatePriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "routine", "urgent", "stat":
		return true
	}
	return false
}
