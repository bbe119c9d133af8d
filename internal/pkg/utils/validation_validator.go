package utils

import (
	"time"

	"carelog-service/internal/app/models"
	"carelog-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("sleep_status", validateSleepStatus)
	validate.RegisterValidation("time_slot", validateTimeSlot)
	validate.RegisterValidation("calendar_date", validateCalendarDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSleepStatus(fl validator.FieldLevel) bool {
	return models.IsValidSleepStatus(fl.Field().String())
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	return models.IsValidTimeSlot(fl.Field().String())
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	parsed, err := time.Parse(constvars.DateLayout, value)
	if err != nil {
		return false
	}
	return parsed.Format(constvars.DateLayout) == value
}
