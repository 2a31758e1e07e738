package models

type UserStatus string
type UserRole string
type SubscriptionStatus string
type PaymentStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"

	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// AssessmentKinds are the sub-paths the proxy forwards to the AI backend.
var AssessmentKinds = []string{
	"ats_score",
	"resume_optimize",
	"technical_assessment",
	"general_aptitude",
	"communication_test",
	"personality_assessment",
	"linkedin_post",
}

func IsAssessmentKind(kind string) bool {
	for _, k := range AssessmentKinds {
		if k == kind {
			return true
		}
	}
	return false
}
