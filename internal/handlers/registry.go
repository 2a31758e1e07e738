package handlers

// AppHandlers holds every handler the router mounts.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	AdminHandler        *AdminHandler
	PaymentHandler      *PaymentHandler
	SubscriptionHandler *SubscriptionHandler
	ResumeHandler       *ResumeHandler
	AssessmentHandler   *AssessmentHandler
	JobsHandler         *JobsHandler
	ContactHandler      *ContactHandler
	HealthHandler       *HealthHandler
}
