package models

import (
	"time"

	"gorm.io/datatypes"
)

// ResumeRecord tracks a resume object stored in the resume bucket.
type ResumeRecord struct {
	BaseModel
	UserID         string         `gorm:"not null;index"`
	Path           string         `gorm:"not null"` // object path inside the bucket
	FileURL        string         `gorm:"column:file_url;not null"`
	UploadedAt     time.Time      `gorm:"not null"`
	IsActive       bool           `gorm:"default:true"`
	AnalysisOutput datatypes.JSON `gorm:"type:jsonb"` // null until re-analyzed

	OriginalName string
	MimeType     string
	Size         int64
}
