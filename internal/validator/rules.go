package validator

import (
	"log"

	"talento_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Startup-time misconfiguration, do not run without it.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-payment-status", validatePaymentStatus)
	mustRegister("is-subscription-status", validateSubscriptionStatus)
	mustRegister("is-assessment-kind", validateAssessmentKind)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	switch models.UserRole(value) {
	case models.UserRoleUser, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentStatus(value) {
	case models.PaymentStatusCreated, models.PaymentStatusPaid, models.PaymentStatusFailed:
		return true
	default:
		return false
	}
}

func validateSubscriptionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.SubscriptionStatus(value) {
	case models.SubscriptionStatusActive, models.SubscriptionStatusExpired, models.SubscriptionStatusCancelled:
		return true
	default:
		return false
	}
}

func validateAssessmentKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsAssessmentKind(value)
}
