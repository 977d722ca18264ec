package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "nestify/internal/errors"
	"nestify/internal/model"
)

func TestAdminService_Stats(t *testing.T) {
	users := new(MockUserRepository)
	properties := new(MockPropertyRepository)
	requests := new(MockRoomRequestRepository)
	users.On("Count", mock.Anything, mock.Anything).Return(int64(3), nil)
	properties.On("Count", mock.Anything, mock.Anything).Return(int64(7), nil)
	requests.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	svc := NewAdminService(users, properties, requests)

	_, err := svc.Stats(context.Background(), &model.User{ID: uuid.New()})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	stats, err := svc.Stats(context.Background(), &model.User{ID: uuid.New(), IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Users)
	assert.Equal(t, int64(7), stats.ActiveProperties)
	assert.Equal(t, int64(2), stats.RoomRequests)
	users.AssertNumberOfCalls(t, "Count", 4)
}
