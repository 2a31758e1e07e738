package workers

import (
	"context"
	"time"

	"talento_backend/internal/logger"
	"talento_backend/internal/repositories"
)

// SubscriptionWorker runs periodic maintenance: lapsed subscriptions get
// marked expired and stale refresh tokens get pruned.
type SubscriptionWorker struct {
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
}

func NewSubscriptionWorker(subscriptionRepo repositories.SubscriptionRepository, userRepo repositories.UserRepository) *SubscriptionWorker {
	return &SubscriptionWorker{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.expireSubscriptions(ctx)
	go w.cleanRefreshTokens(ctx)
}

func (w *SubscriptionWorker) expireSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			count, err := w.subscriptionRepo.ExpireLapsed()
			if err != nil {
				logger.Error("Failed to expire lapsed subscriptions", "error", err)
			} else if count > 0 {
				logger.Info("Expired lapsed subscriptions", "count", count)
			}
		}
	}
}

func (w *SubscriptionWorker) cleanRefreshTokens(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.userRepo.CleanExpiredRefreshTokens(); err != nil {
				logger.Error("Failed to clean expired refresh tokens", "error", err)
			}
		}
	}
}
