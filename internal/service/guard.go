package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nestify/internal/cache"
	apperrors "nestify/internal/errors"
	"nestify/internal/logging"
	"nestify/internal/media"
	"nestify/internal/metrics"
	"nestify/internal/model"
)

// Validator validates input structs; validation.Validator satisfies it.
type Validator interface {
	Validate(i any) error
}

// ParseID parses a path id. what names the entity in the error message.
func ParseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperrors.New(apperrors.ErrInvalidIDFormat, fmt.Sprintf("invalid %s id", what))
	}
	return id, nil
}

// RequireAdmin rejects actors without the admin flag.
func RequireAdmin(actor *model.User) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	if !actor.IsAdmin {
		return apperrors.New(apperrors.ErrForbidden, "admin access required")
	}
	return nil
}

// RequireOwnerOrAdmin rejects actors that neither own the record nor are admins.
func RequireOwnerOrAdmin(actor *model.User, ownerID uuid.UUID) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	if actor.ID == ownerID || actor.IsAdmin {
		return nil
	}
	return apperrors.New(apperrors.ErrForbidden, "you do not own this resource")
}

// lookupErr turns a missing row into NotFound and wraps anything else.
func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(what)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// userCache is a read-through cache of users keyed by id. The password
// hash is never serialized, so cached users are for display and auth only.
type userCache struct {
	cache *cache.Client
}

func (u userCache) key(id uuid.UUID) string {
	return "user:" + id.String()
}

func (u userCache) get(ctx context.Context, id uuid.UUID) *model.User {
	var user model.User
	if !u.cache.GetJSON(ctx, u.key(id), &user) {
		return nil
	}
	return &user
}

func (u userCache) set(ctx context.Context, user *model.User) {
	u.cache.SetJSON(ctx, u.key(user.ID), user, userCacheTTL)
}

func (u userCache) invalidate(ctx context.Context, id uuid.UUID) {
	u.cache.Delete(ctx, u.key(id))
}

// uploadAll uploads files in order. On the first failure the images already
// uploaded are released again and the failure is returned.
func uploadAll(ctx context.Context, m media.Delegate, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		u, err := m.Upload(ctx, f)
		if err != nil {
			releaseImages(ctx, m, urls)
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// releaseImages deletes images best-effort. Failures are logged and counted
// and returned so callers can report them.
func releaseImages(ctx context.Context, m media.Delegate, urls []string) []error {
	var failed []error
	for _, u := range urls {
		if err := media.DeleteURL(ctx, m, u); err != nil {
			metrics.ImageCleanupFailures.Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("url", u).Msg("failed to delete image")
			failed = append(failed, err)
		}
	}
	return failed
}
