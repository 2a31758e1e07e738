package models

import (
	"time"

	"gorm.io/datatypes"
)

// Metadata keys mirrored from the auth provider's user_metadata blob.
const (
	MetaOnboarded = "onboarded"
	MetaName      = "name"
	MetaAvatarURL = "avatar_url"
)

type User struct {
	BaseModel
	Email        string            `gorm:"uniqueIndex;not null"`
	PasswordHash string            `gorm:"not null"`
	Role         UserRole          `gorm:"type:varchar(20);not null;default:'user'"`
	Status       UserStatus        `gorm:"type:varchar(20);default:'pending'"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`

	// Relations
	Subscription  *UserSubscription `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken    `gorm:"foreignKey:UserID"`
	Resumes       []ResumeRecord    `gorm:"foreignKey:UserID"`
}

// Onboarded reports whether the user finished the onboarding flow.
// Anything other than a metadata value of true counts as not onboarded.
func (u *User) Onboarded() bool {
	if u.Metadata == nil {
		return false
	}
	v, ok := u.Metadata[MetaOnboarded].(bool)
	return ok && v
}

func (u *User) MetaString(key string) string {
	if u.Metadata == nil {
		return ""
	}
	s, _ := u.Metadata[key].(string)
	return s
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
