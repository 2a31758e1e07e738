package models

import "gorm.io/datatypes"

// SavedJob is a job listing a user bookmarked from the jobs search.
// One row per user+URL.
type SavedJob struct {
	BaseModel
	UserID       string         `gorm:"not null;index:idx_saved_jobs_user_url,unique"`
	JobURL       string         `gorm:"not null;index:idx_saved_jobs_user_url,unique"`
	JobData      datatypes.JSON `gorm:"type:jsonb;not null"`
	SearchParams datatypes.JSON `gorm:"type:jsonb"`
}
