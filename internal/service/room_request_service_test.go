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
	"nestify/internal/validation"
)

func TestRoomRequestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   RoomRequestInput
		wantErr error
		budget  string
	}{
		{"valid", RoomRequestInput{Location: "Koramangala", Budget: "12000.50"}, nil, "12000.5"},
		{"budget not numeric", RoomRequestInput{Location: "Koramangala", Budget: "cheap"}, apperrors.ErrValidation, ""},
		{"negative budget", RoomRequestInput{Location: "Koramangala", Budget: "-5"}, apperrors.ErrValidation, ""},
		{"missing location", RoomRequestInput{Budget: "100"}, apperrors.ErrValidation, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRoomRequestRepository)
			repo.On("Create", mock.Anything, mock.AnythingOfType("*model.RoomRequest")).Return(nil)
			actor := &model.User{ID: uuid.New()}

			req, err := NewRoomRequestService(repo, validation.New()).Create(context.Background(), actor, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.budget, req.Budget)
			assert.Equal(t, actor.ID, req.UserID)
		})
	}
}

func TestRoomRequestService_UpdateAndDeleteOwnership(t *testing.T) {
	owner := &model.User{ID: uuid.New()}
	stranger := &model.User{ID: uuid.New()}
	id := uuid.New()

	repo := new(MockRoomRequestRepository)
	existing := &model.RoomRequest{ID: id, UserID: owner.ID, Location: "Indiranagar", Budget: "9000"}
	repo.On("FindByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, existing, []string{"budget"}).Return(nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	svc := NewRoomRequestService(repo, validation.New())
	ctx := context.Background()

	_, err := svc.Update(ctx, stranger, id, RoomRequestUpdateInput{Budget: ptr("1")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, id), apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	updated, err := svc.Update(ctx, owner, id, RoomRequestUpdateInput{Budget: ptr("9500")})
	require.NoError(t, err)
	assert.Equal(t, "9500", updated.Budget)

	require.NoError(t, svc.Delete(ctx, owner, id))
	repo.AssertExpectations(t)
}
