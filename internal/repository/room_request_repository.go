package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nestify/internal/model"
	"nestify/internal/query"
)

// RoomRequestFilter narrows a room-request listing.
type RoomRequestFilter struct {
	Search string
	UserID *uuid.UUID
	Order  string
}

// RoomRequestSearchColumns are matched by RoomRequestFilter.Search.
var RoomRequestSearchColumns = []string{"location"}

func (f RoomRequestFilter) scopes() []query.Scope {
	scopes := []query.Scope{query.Search(f.Search, RoomRequestSearchColumns...)}
	if f.UserID != nil {
		userID := *f.UserID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", userID)
		})
	}
	return scopes
}

// RoomRequestRepository defines room-request persistence operations.
type RoomRequestRepository interface {
	Create(ctx context.Context, req *model.RoomRequest) error
	Update(ctx context.Context, req *model.RoomRequest, columns ...string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RoomRequest, error)
	List(ctx context.Context, filter RoomRequestFilter, page query.Page) ([]model.RoomRequest, int64, error)
	Count(ctx context.Context, scopes ...query.Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomRequestRepository struct {
	db *gorm.DB
}

// NewRoomRequestRepository creates a new room-request repository.
func NewRoomRequestRepository(db *gorm.DB) RoomRequestRepository {
	return &roomRequestRepository{db: db}
}

func (r *roomRequestRepository) Create(ctx context.Context, req *model.RoomRequest) error {
	return r.db.WithContext(ctx).Omit("User").Create(req).Error
}

func (r *roomRequestRepository) Update(ctx context.Context, req *model.RoomRequest, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(req).Omit("User").Select(columns).Updates(req)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *roomRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RoomRequest, error) {
	var req model.RoomRequest
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *roomRequestRepository) List(ctx context.Context, filter RoomRequestFilter, page query.Page) ([]model.RoomRequest, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.RoomRequest{}).Scopes(filter.scopes()...)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	reqs := make([]model.RoomRequest, 0, page.Limit)
	if err := scoped().
		Scopes(query.OrderScope(filter.Order), page.Scope()).
		Preload("User").
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

func (r *roomRequestRepository) Count(ctx context.Context, scopes ...query.Scope) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RoomRequest{}).Scopes(scopes...).Count(&n).Error
	return n, err
}

func (r *roomRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RoomRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
