package repositories

import (
	"errors"
	"time"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	FindPlanByID(id string) (*models.SubscriptionPlan, error)
	FindPlanByName(name string) (*models.SubscriptionPlan, error)
	ListActivePlans() ([]models.SubscriptionPlan, error)
	CreatePlan(plan *models.SubscriptionPlan) error

	FindActiveByUser(userID string) (*models.UserSubscription, error)
	Save(sub *models.UserSubscription) error
	ExpireLapsed() (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) FindPlanByID(id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepositoryImpl) FindPlanByName(name string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepositoryImpl) ListActivePlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepositoryImpl) CreatePlan(plan *models.SubscriptionPlan) error {
	return r.db.Create(plan).Error
}

func (r *SubscriptionRepositoryImpl) FindActiveByUser(userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) Save(sub *models.UserSubscription) error {
	return r.db.Save(sub).Error
}

// ExpireLapsed marks active subscriptions whose end date passed.
func (r *SubscriptionRepositoryImpl) ExpireLapsed() (int64, error) {
	result := r.db.Model(&models.UserSubscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, time.Now()).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionStatusExpired,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
