package services

import (
	"time"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

// DefaultPlanName is the single subscription plan the checkout sells.
const DefaultPlanName = "Talento Pro"

type SubscriptionService interface {
	EnsureDefaultPlan(price int64, currency string) (*models.SubscriptionPlan, error)
	ActivateForUser(userID string, days int) (*models.UserSubscription, error)
	GetForUser(userID string) (*dto.SubscriptionResponse, error)
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
}

func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepository) SubscriptionService {
	return &SubscriptionServiceImpl{subscriptionRepo: subscriptionRepo}
}

// EnsureDefaultPlan creates the default plan on first boot.
func (s *SubscriptionServiceImpl) EnsureDefaultPlan(price int64, currency string) (*models.SubscriptionPlan, error) {
	plan, err := s.subscriptionRepo.FindPlanByName(DefaultPlanName)
	if err == nil {
		return plan, nil
	}
	if !apperrors.Is(err, repositories.ErrPlanNotFound) {
		return nil, err
	}

	plan = &models.SubscriptionPlan{
		Name:     DefaultPlanName,
		Price:    price,
		Currency: currency,
		Duration: "monthly",
		IsActive: true,
	}
	if err := s.subscriptionRepo.CreatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ActivateForUser grants or extends the user's subscription by the given
// number of days. An existing active subscription is extended from its
// current end date so back-to-back payments stack.
func (s *SubscriptionServiceImpl) ActivateForUser(userID string, days int) (*models.UserSubscription, error) {
	now := time.Now()

	sub, err := s.subscriptionRepo.FindActiveByUser(userID)
	if err == nil {
		sub.EndDate = sub.EndDate.AddDate(0, 0, days)
		if err := s.subscriptionRepo.Save(sub); err != nil {
			return nil, err
		}
		return sub, nil
	}
	if !apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, err
	}

	plan, err := s.subscriptionRepo.FindPlanByName(DefaultPlanName)
	if err != nil {
		return nil, err
	}

	sub = &models.UserSubscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    models.SubscriptionStatusActive,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, days),
	}
	if err := s.subscriptionRepo.Save(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionServiceImpl) GetForUser(userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveByUser(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return &dto.SubscriptionResponse{Active: false}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.SubscriptionResponse{
		Active:    true,
		PlanName:  sub.Plan.Name,
		Status:    string(sub.Status),
		StartDate: sub.StartDate,
		EndDate:   sub.EndDate,
	}, nil
}
