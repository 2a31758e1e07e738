package services

import (
	"encoding/json"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

type SavedJobService interface {
	Save(userID string, req *dto.SaveJobRequest) (*dto.SavedJobResponse, error)
	List(userID string) ([]dto.SavedJobResponse, error)
	DeleteByURL(userID, jobURL string) error
}

type SavedJobServiceImpl struct {
	repo repositories.SavedJobRepository
}

func NewSavedJobService(repo repositories.SavedJobRepository) SavedJobService {
	return &SavedJobServiceImpl{repo: repo}
}

func (s *SavedJobServiceImpl) Save(userID string, req *dto.SaveJobRequest) (*dto.SavedJobResponse, error) {
	jobURL := extractJobURL(req.JobData)
	if jobURL == "" {
		return nil, apperrors.NewBadRequestError("Job data is required")
	}

	job := &models.SavedJob{
		UserID:       userID,
		JobURL:       jobURL,
		JobData:      []byte(req.JobData),
		SearchParams: []byte(req.SearchParams),
	}
	if err := s.repo.Create(job); err != nil {
		if apperrors.Is(err, repositories.ErrJobAlreadySaved) {
			return nil, apperrors.NewConflictError("jobs", "Job already saved")
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.SavedJobResponse{ID: job.ID, JobData: req.JobData}, nil
}

func (s *SavedJobServiceImpl) List(userID string) ([]dto.SavedJobResponse, error) {
	jobs, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.SavedJobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.SavedJobResponse{
			ID:      jobs[i].ID,
			JobData: json.RawMessage(jobs[i].JobData),
		})
	}
	return out, nil
}

func (s *SavedJobServiceImpl) DeleteByURL(userID, jobURL string) error {
	if jobURL == "" {
		return apperrors.NewBadRequestError("Job URL is required")
	}
	job, err := s.repo.FindByUserAndURL(userID, jobURL)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSavedJobNotFound) {
			return apperrors.NewNotFoundError("jobs", "Saved job not found")
		}
		return apperrors.InternalError(err)
	}
	if err := s.repo.Delete(userID, job.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func extractJobURL(data json.RawMessage) string {
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.URL
}
