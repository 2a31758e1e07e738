package repositories

import (
	"errors"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSavedJobNotFound = errors.New("saved job not found")
	ErrJobAlreadySaved  = errors.New("job already saved")
)

type SavedJobRepository interface {
	Create(job *models.SavedJob) error
	FindByUser(userID string) ([]models.SavedJob, error)
	FindByUserAndURL(userID, jobURL string) (*models.SavedJob, error)
	Delete(userID, id string) error
}

type SavedJobRepositoryImpl struct {
	db *gorm.DB
}

func NewSavedJobRepository(db *gorm.DB) SavedJobRepository {
	return &SavedJobRepositoryImpl{db: db}
}

func (r *SavedJobRepositoryImpl) Create(job *models.SavedJob) error {
	var existing models.SavedJob
	err := r.db.Where("user_id = ? AND job_url = ?", job.UserID, job.JobURL).
		First(&existing).Error
	if err == nil {
		return ErrJobAlreadySaved
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(job).Error
}

func (r *SavedJobRepositoryImpl) FindByUser(userID string) ([]models.SavedJob, error) {
	var jobs []models.SavedJob
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *SavedJobRepositoryImpl) FindByUserAndURL(userID, jobURL string) (*models.SavedJob, error) {
	var job models.SavedJob
	err := r.db.Where("user_id = ? AND job_url = ?", userID, jobURL).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSavedJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *SavedJobRepositoryImpl) Delete(userID, id string) error {
	result := r.db.Delete(&models.SavedJob{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSavedJobNotFound
	}
	return nil
}
