package dto

import "encoding/json"

// JobResult is the minimal listing shape the UI consumes.
type JobResult struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	JobType     string `json:"job_type"`
}

type JobSearchResponse struct {
	Results []JobResult `json:"results"`
}

type SaveJobRequest struct {
	JobData      json.RawMessage `json:"job_data" binding:"required" validate:"required"`
	SearchParams json.RawMessage `json:"search_params"`
}

type SavedJobResponse struct {
	ID      string          `json:"id"`
	JobData json.RawMessage `json:"job_data"`
}
