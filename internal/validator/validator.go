// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"lendhub/internal/activity"
	"lendhub/internal/models"
)

var eventTypeRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterWith(v)
	}
}

// RegisterWith registers the custom validators with v.
func RegisterWith(v *validator.Validate) {
	_ = v.RegisterValidation("activity_categories", validateActivityCategories)
	_ = v.RegisterValidation("event_type_codes", validateEventTypeCodes)
	_ = v.RegisterValidation("portal", validatePortal)
}

// validateActivityCategories accepts a comma-separated list of categories.
func validateActivityCategories(fl validator.FieldLevel) bool {
	return eachToken(fl.Field().String(), func(s string) bool {
		_, ok := activity.ParseCategory(s)
		return ok
	})
}

// validateEventTypeCodes accepts a comma-separated list of event type codes.
func validateEventTypeCodes(fl validator.FieldLevel) bool {
	return eachToken(fl.Field().String(), eventTypeRegex.MatchString)
}

func validatePortal(fl validator.FieldLevel) bool {
	portal := fl.Field().String()
	for _, known := range models.Portals() {
		if portal == known {
			return true
		}
	}
	return false
}

func eachToken(list string, valid func(string) bool) bool {
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if !valid(tok) {
			return false
		}
	}
	return true
}
