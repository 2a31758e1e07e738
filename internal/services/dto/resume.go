package dto

import "time"

type ResumeUploadResponse struct {
	Success   bool      `json:"success"`
	URL       string    `json:"url"`
	Path      string    `json:"path"`
	FileName  string    `json:"fileName"`
	FileSize  int64     `json:"fileSize"`
	FileType  string    `json:"fileType"`
	Timestamp time.Time `json:"timestamp"`
}

// SignedURLRequest accepts either a bucket-relative object path or a
// public URL the path can be derived from.
type SignedURLRequest struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type SignedURLResponse struct {
	URL string `json:"url"`
}

type ResumeResponse struct {
	ID          string    `json:"id"`
	FileURL     string    `json:"file_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
	IsActive    bool      `json:"is_active"`
	HasAnalysis bool      `json:"has_analysis"`
}
