package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "nestify/internal/errors"
	"nestify/internal/model"
)

func newSubscriptionService(repo *MockUserRepository, now time.Time) *subscriptionService {
	svc := NewSubscriptionService(repo, nil, 30*24*time.Hour).(*subscriptionService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSubscriptionService_PurchaseAndCancel(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &model.User{ID: uuid.New(), SubscriptionStatus: model.SubscriptionInactive}
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user, []string{"subscription_status", "subscription_expires_at"}).Return(nil)

	svc := newSubscriptionService(repo, now)
	ctx := context.Background()

	status, err := svc.Purchase(ctx, user)
	require.NoError(t, err)
	assert.True(t, status.Active)
	assert.Equal(t, now.Add(30*24*time.Hour), *status.ExpiresAt)

	// A second purchase extends from the current expiry.
	status, err = svc.Purchase(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, now.Add(60*24*time.Hour), *status.ExpiresAt)

	status, err = svc.Cancel(ctx, user)
	require.NoError(t, err)
	assert.False(t, status.Active)
	assert.Equal(t, model.SubscriptionInactive, status.Status)
	assert.Nil(t, status.ExpiresAt)
}

func TestSubscriptionService_StatusExpires(t *testing.T) {
	past := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	user := &model.User{ID: uuid.New(), SubscriptionStatus: model.SubscriptionActive, SubscriptionExpiresAt: &past}
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user, []string{"subscription_status", "subscription_expires_at"}).Return(nil)

	status, err := newSubscriptionService(repo, past.Add(time.Hour)).Status(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionInactive, status.Status)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_RequiresActor(t *testing.T) {
	_, err := newSubscriptionService(new(MockUserRepository), time.Now()).Status(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
