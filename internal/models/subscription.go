package models

import (
	"time"

	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	BaseModel
	Name     string         `gorm:"not null"`
	Price    int64          `gorm:"not null"` // minor units
	Currency string         `gorm:"type:varchar(8);default:'INR'"`
	Duration string         `gorm:"not null"` // "monthly", "yearly"
	Features datatypes.JSON `gorm:"type:jsonb"`
	IsActive bool           `gorm:"default:true"`
}

type UserSubscription struct {
	BaseModel
	UserID      string             `gorm:"not null;index"`
	PlanID      string             `gorm:"not null;index"`
	Status      SubscriptionStatus `gorm:"type:varchar(20);default:'active'"`
	StartDate   time.Time
	EndDate     time.Time
	AutoRenew   bool `gorm:"default:false"`
	CancelledAt *time.Time

	// Relations
	Plan SubscriptionPlan `gorm:"foreignKey:PlanID"`
}
