package models

import "time"

// PaymentOrder is a gateway order created for a checkout attempt. The
// amount recorded here is the authoritative one; the verify callback
// never trusts a client-supplied amount.
type PaymentOrder struct {
	BaseModel
	UserID   string        `gorm:"not null;index"`
	OrderID  string        `gorm:"not null;uniqueIndex"` // gateway order id
	Amount   int64         `gorm:"not null"`             // minor units (paise)
	Currency string        `gorm:"type:varchar(8);default:'INR'"`
	Receipt  string        `gorm:"not null"`
	Status   PaymentStatus `gorm:"type:varchar(20);default:'created'"`
}

// PaymentTransaction records a verified payment. PaymentID is unique so
// duplicate gateway callbacks and client retries stay idempotent.
type PaymentTransaction struct {
	BaseModel
	UserID    string        `gorm:"not null;index"`
	OrderID   string        `gorm:"not null;index"`
	PaymentID string        `gorm:"not null;uniqueIndex"`
	Amount    int64         `gorm:"not null"`
	Status    PaymentStatus `gorm:"type:varchar(20);default:'paid'"`
	PaidAt    *time.Time
}
