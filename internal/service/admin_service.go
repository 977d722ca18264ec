package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nestify/internal/model"
	"nestify/internal/query"
	"nestify/internal/repository"
)

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	Users               int64 `json:"users"`
	Brokers             int64 `json:"brokers"`
	Admins              int64 `json:"admins"`
	Properties          int64 `json:"properties"`
	ActiveProperties    int64 `json:"activeProperties"`
	RoomRequests        int64 `json:"roomRequests"`
	ActiveSubscriptions int64 `json:"activeSubscriptions"`
}

// AdminService serves the admin dashboard.
type AdminService interface {
	Stats(ctx context.Context, actor *model.User) (*DashboardStats, error)
}

type adminService struct {
	users        repository.UserRepository
	properties   repository.PropertyRepository
	roomRequests repository.RoomRequestRepository
	now          func() time.Time
}

// NewAdminService creates an admin service.
func NewAdminService(users repository.UserRepository, properties repository.PropertyRepository, roomRequests repository.RoomRequestRepository) AdminService {
	return &adminService{users: users, properties: properties, roomRequests: roomRequests, now: time.Now}
}

func (s *adminService) Stats(ctx context.Context, actor *model.User) (*DashboardStats, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	isAdmin := true
	now := s.now()
	activeSubscription := func(db *gorm.DB) *gorm.DB {
		return db.Where("subscription_status = ? AND (subscription_expires_at IS NULL OR subscription_expires_at > ?)", model.SubscriptionActive, now)
	}

	var stats DashboardStats
	counts := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&stats.Users, func() (int64, error) { return s.users.Count(ctx) }},
		{&stats.Brokers, func() (int64, error) { return s.users.Count(ctx, query.Equals("role", string(model.RoleBroker))) }},
		{&stats.Admins, func() (int64, error) { return s.users.Count(ctx, query.Bool("is_admin", &isAdmin)) }},
		{&stats.ActiveSubscriptions, func() (int64, error) { return s.users.Count(ctx, activeSubscription) }},
		{&stats.Properties, func() (int64, error) { return s.properties.Count(ctx) }},
		{&stats.ActiveProperties, func() (int64, error) {
			return s.properties.Count(ctx, query.Equals("status", model.PropertyStatusActive))
		}},
		{&stats.RoomRequests, func() (int64, error) { return s.roomRequests.Count(ctx) }},
	}
	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
		*c.dst = n
	}
	return &stats, nil
}
