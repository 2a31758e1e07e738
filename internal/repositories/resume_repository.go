package repositories

import (
	"errors"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	Create(record *models.ResumeRecord) error
	FindByID(id string) (*models.ResumeRecord, error)
	FindByUser(userID string) ([]models.ResumeRecord, error)
	FindActiveByUser(userID string) (*models.ResumeRecord, error)
	SetAnalysisOutput(id string, output []byte) error
	Deactivate(id string) error
}

type ResumeRepositoryImpl struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &ResumeRepositoryImpl{db: db}
}

func (r *ResumeRepositoryImpl) Create(record *models.ResumeRecord) error {
	return r.db.Create(record).Error
}

func (r *ResumeRepositoryImpl) FindByID(id string) (*models.ResumeRecord, error) {
	var rec models.ResumeRecord
	err := r.db.First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ResumeRepositoryImpl) FindByUser(userID string) ([]models.ResumeRecord, error) {
	var records []models.ResumeRecord
	err := r.db.Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&records).Error
	return records, err
}

func (r *ResumeRepositoryImpl) FindActiveByUser(userID string) (*models.ResumeRecord, error) {
	var rec models.ResumeRecord
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("uploaded_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ResumeRepositoryImpl) SetAnalysisOutput(id string, output []byte) error {
	return r.db.Model(&models.ResumeRecord{}).
		Where("id = ?", id).
		Update("analysis_output", output).Error
}

func (r *ResumeRepositoryImpl) Deactivate(id string) error {
	return r.db.Model(&models.ResumeRecord{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
