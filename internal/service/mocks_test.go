package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nestify/internal/model"
	"nestify/internal/query"
	"nestify/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User, columns ...string) error {
	args := m.Called(ctx, user, columns)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter, page query.Page) ([]model.User, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Count(ctx context.Context, scopes ...query.Scope) (int64, error) {
	args := m.Called(ctx, scopes)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPropertyRepository is a mock implementation of PropertyRepository.
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *model.Property, columns ...string) error {
	args := m.Called(ctx, property, columns)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, filter repository.PropertyFilter, page query.Page) ([]model.Property, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Count(ctx context.Context, scopes ...query.Scope) (int64, error) {
	args := m.Called(ctx, scopes)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRoomRequestRepository is a mock implementation of RoomRequestRepository.
type MockRoomRequestRepository struct {
	mock.Mock
}

func (m *MockRoomRequestRepository) Create(ctx context.Context, req *model.RoomRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRoomRequestRepository) Update(ctx context.Context, req *model.RoomRequest, columns ...string) error {
	args := m.Called(ctx, req, columns)
	return args.Error(0)
}

func (m *MockRoomRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RoomRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomRequest), args.Error(1)
}

func (m *MockRoomRequestRepository) List(ctx context.Context, filter repository.RoomRequestFilter, page query.Page) ([]model.RoomRequest, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.RoomRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockRoomRequestRepository) Count(ctx context.Context, scopes ...query.Scope) (int64, error) {
	args := m.Called(ctx, scopes)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}
