package services

import (
	"encoding/json"
	"testing"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSavedJobRepo struct {
	jobs []*models.SavedJob
}

func (f *fakeSavedJobRepo) Create(job *models.SavedJob) error {
	for _, existing := range f.jobs {
		if existing.UserID == job.UserID && existing.JobURL == job.JobURL {
			return repositories.ErrJobAlreadySaved
		}
	}
	job.ID = "saved-1"
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeSavedJobRepo) FindByUser(userID string) ([]models.SavedJob, error) {
	var out []models.SavedJob
	for _, j := range f.jobs {
		if j.UserID == userID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeSavedJobRepo) FindByUserAndURL(userID, jobURL string) (*models.SavedJob, error) {
	for _, j := range f.jobs {
		if j.UserID == userID && j.JobURL == jobURL {
			return j, nil
		}
	}
	return nil, repositories.ErrSavedJobNotFound
}

func (f *fakeSavedJobRepo) Delete(userID, id string) error {
	for i, j := range f.jobs {
		if j.UserID == userID && j.ID == id {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return repositories.ErrSavedJobNotFound
}

func jobPayload(url string) json.RawMessage {
	return json.RawMessage(`{"title":"Backend Engineer","url":"` + url + `"}`)
}

func TestSavedJobSave_KeyedByJobURL(t *testing.T) {
	t.Parallel()

	repo := &fakeSavedJobRepo{}
	svc := NewSavedJobService(repo)

	resp, err := svc.Save("user-1", &dto.SaveJobRequest{JobData: jobPayload("https://remotive.com/jobs/1")})
	require.NoError(t, err)
	assert.Equal(t, "saved-1", resp.ID)
	require.Len(t, repo.jobs, 1)
	assert.Equal(t, "https://remotive.com/jobs/1", repo.jobs[0].JobURL)
}

func TestSavedJobSave_MissingURLRejected(t *testing.T) {
	t.Parallel()

	svc := NewSavedJobService(&fakeSavedJobRepo{})

	_, err := svc.Save("user-1", &dto.SaveJobRequest{JobData: json.RawMessage(`{"title":"no url"}`)})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestSavedJobSave_DuplicateConflicts(t *testing.T) {
	t.Parallel()

	svc := NewSavedJobService(&fakeSavedJobRepo{})

	_, err := svc.Save("user-1", &dto.SaveJobRequest{JobData: jobPayload("https://remotive.com/jobs/1")})
	require.NoError(t, err)

	_, err = svc.Save("user-1", &dto.SaveJobRequest{JobData: jobPayload("https://remotive.com/jobs/1")})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestSavedJobDeleteByURL(t *testing.T) {
	t.Parallel()

	repo := &fakeSavedJobRepo{}
	svc := NewSavedJobService(repo)

	_, err := svc.Save("user-1", &dto.SaveJobRequest{JobData: jobPayload("https://remotive.com/jobs/1")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByURL("user-1", "https://remotive.com/jobs/1"))
	assert.Empty(t, repo.jobs)

	err = svc.DeleteByURL("user-1", "https://remotive.com/jobs/1")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestSavedJobDeleteByURL_EmptyURLRejected(t *testing.T) {
	t.Parallel()

	svc := NewSavedJobService(&fakeSavedJobRepo{})

	err := svc.DeleteByURL("user-1", "")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}
