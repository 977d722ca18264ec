package service

import (
	"context"
	"time"

	"nestify/internal/cache"
	apperrors "nestify/internal/errors"
	"nestify/internal/logging"
	"nestify/internal/model"
	"nestify/internal/repository"
)

// SubscriptionStatus is the caller's current subscription.
type SubscriptionStatus struct {
	Status    string     `json:"status"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// SubscriptionService manages the premium subscription flag. There is no
// payment step; purchase simply activates it for the configured period.
type SubscriptionService interface {
	Status(ctx context.Context, actor *model.User) (*SubscriptionStatus, error)
	Purchase(ctx context.Context, actor *model.User) (*SubscriptionStatus, error)
	Cancel(ctx context.Context, actor *model.User) (*SubscriptionStatus, error)
}

type subscriptionService struct {
	repo   repository.UserRepository
	users  userCache
	period time.Duration
	now    func() time.Time
}

// NewSubscriptionService creates a subscription service granting period per purchase.
func NewSubscriptionService(repo repository.UserRepository, cache *cache.Client, period time.Duration) SubscriptionService {
	return &subscriptionService{repo: repo, users: userCache{cache: cache}, period: period, now: time.Now}
}

func (s *subscriptionService) status(u *model.User) *SubscriptionStatus {
	active := u.HasActiveSubscription(s.now())
	status := model.SubscriptionInactive
	if active {
		status = model.SubscriptionActive
	}
	return &SubscriptionStatus{Status: status, Active: active, ExpiresAt: u.SubscriptionExpiresAt}
}

// Status reports the subscription; an expired one is stored back as inactive.
func (s *subscriptionService) Status(ctx context.Context, actor *model.User) (*SubscriptionStatus, error) {
	user, err := s.load(ctx, actor)
	if err != nil {
		return nil, err
	}
	if user.SubscriptionStatus == model.SubscriptionActive && !user.HasActiveSubscription(s.now()) {
		user.SubscriptionStatus = model.SubscriptionInactive
		if err := s.save(ctx, user); err != nil {
			return nil, err
		}
	}
	return s.status(user), nil
}

// Purchase activates the subscription. A still-active one is extended.
func (s *subscriptionService) Purchase(ctx context.Context, actor *model.User) (*SubscriptionStatus, error) {
	user, err := s.load(ctx, actor)
	if err != nil {
		return nil, err
	}

	start := s.now()
	if user.HasActiveSubscription(start) && user.SubscriptionExpiresAt != nil {
		start = *user.SubscriptionExpiresAt
	}
	expires := start.Add(s.period)
	user.SubscriptionStatus = model.SubscriptionActive
	user.SubscriptionExpiresAt = &expires

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Str("user_id", user.ID.String()).Time("expires_at", expires).Msg("subscription purchased")
	return s.status(user), nil
}

func (s *subscriptionService) Cancel(ctx context.Context, actor *model.User) (*SubscriptionStatus, error) {
	user, err := s.load(ctx, actor)
	if err != nil {
		return nil, err
	}
	user.SubscriptionStatus = model.SubscriptionInactive
	user.SubscriptionExpiresAt = nil

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Str("user_id", user.ID.String()).Msg("subscription cancelled")
	return s.status(user), nil
}

func (s *subscriptionService) load(ctx context.Context, actor *model.User) (*model.User, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	return user, nil
}

func (s *subscriptionService) save(ctx context.Context, user *model.User) error {
	if err := s.repo.Update(ctx, user, "subscription_status", "subscription_expires_at"); err != nil {
		return lookupErr(err, "user")
	}
	s.users.invalidate(ctx, user.ID)
	return nil
}
