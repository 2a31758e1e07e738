package dto

import "time"

type SubscriptionResponse struct {
	Active    bool      `json:"active"`
	PlanName  string    `json:"plan_name,omitempty"`
	Status    string    `json:"status,omitempty"`
	StartDate time.Time `json:"start_date,omitempty"`
	EndDate   time.Time `json:"end_date,omitempty"`
}
