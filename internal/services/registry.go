package services

import (
	"talento_backend/internal/email"
	"talento_backend/internal/storage"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	PaymentService      PaymentService
	SubscriptionService SubscriptionService
	ResumeService       ResumeService
	AssessmentService   AssessmentService
	JobsService         JobsService
	SavedJobService     SavedJobService
	ContactService      ContactService
	EmailProvider       email.Provider
	Storage             storage.Storage
}
