package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "nestify/internal/errors"
	"nestify/internal/model"
	"nestify/internal/query"
	"nestify/internal/repository"
)

// RoomRequestInput is the create payload. Budget is numeric text.
type RoomRequestInput struct {
	Location    string `json:"location" validate:"required,max=255"`
	Budget      string `json:"budget" validate:"required,money,max=32"`
	Description string `json:"description" validate:"max=2000"`
}

// RoomRequestUpdateInput is a partial update.
type RoomRequestUpdateInput struct {
	Location    *string `json:"location" validate:"omitempty,min=1,max=255"`
	Budget      *string `json:"budget" validate:"omitempty,money,max=32"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// RoomRequestService manages roommate-wanted posts.
type RoomRequestService interface {
	Create(ctx context.Context, actor *model.User, in RoomRequestInput) (*model.RoomRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*model.RoomRequest, error)
	List(ctx context.Context, search, sortBy string, page query.Page) ([]model.RoomRequest, int64, error)
	Mine(ctx context.Context, actor *model.User, page query.Page) ([]model.RoomRequest, int64, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, in RoomRequestUpdateInput) (*model.RoomRequest, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type roomRequestService struct {
	repo     repository.RoomRequestRepository
	validate Validator
}

// NewRoomRequestService creates a new room-request service.
func NewRoomRequestService(repo repository.RoomRequestRepository, validate Validator) RoomRequestService {
	return &roomRequestService{repo: repo, validate: validate}
}

// normalizeBudget renders a validated budget in canonical decimal form.
func normalizeBudget(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return d.String()
}

func (s *roomRequestService) Create(ctx context.Context, actor *model.User, in RoomRequestInput) (*model.RoomRequest, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	req := &model.RoomRequest{
		UserID:      actor.ID,
		Location:    strings.TrimSpace(in.Location),
		Budget:      normalizeBudget(in.Budget),
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create room request: %w", err)
	}
	req.User = actor
	return req, nil
}

func (s *roomRequestService) Get(ctx context.Context, id uuid.UUID) (*model.RoomRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "room request")
	}
	return req, nil
}

func (s *roomRequestService) List(ctx context.Context, search, sortBy string, page query.Page) ([]model.RoomRequest, int64, error) {
	order, err := query.RecencySorts.Order(sortBy)
	if err != nil {
		return nil, 0, err
	}
	reqs, total, err := s.repo.List(ctx, repository.RoomRequestFilter{Search: search, Order: order}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list room requests: %w", err)
	}
	return reqs, total, nil
}

func (s *roomRequestService) Mine(ctx context.Context, actor *model.User, page query.Page) ([]model.RoomRequest, int64, error) {
	if actor == nil {
		return nil, 0, apperrors.ErrUnauthorized
	}
	userID := actor.ID
	reqs, total, err := s.repo.List(ctx, repository.RoomRequestFilter{UserID: &userID, Order: query.NaturalOrder}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list own room requests: %w", err)
	}
	return reqs, total, nil
}

func (s *roomRequestService) Update(ctx context.Context, actor *model.User, id uuid.UUID, in RoomRequestUpdateInput) (*model.RoomRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "room request")
	}
	if err := RequireOwnerOrAdmin(actor, req.UserID); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	var columns []string
	if in.Location != nil {
		req.Location = strings.TrimSpace(*in.Location)
		columns = append(columns, "location")
	}
	if in.Budget != nil {
		req.Budget = normalizeBudget(*in.Budget)
		columns = append(columns, "budget")
	}
	if in.Description != nil {
		req.Description = *in.Description
		columns = append(columns, "description")
	}

	if err := s.repo.Update(ctx, req, columns...); err != nil {
		return nil, lookupErr(err, "room request")
	}
	return req, nil
}

func (s *roomRequestService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupErr(err, "room request")
	}
	if err := RequireOwnerOrAdmin(actor, req.UserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupErr(err, "room request")
	}
	return nil
}
