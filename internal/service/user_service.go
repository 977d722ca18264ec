package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nestify/internal/cache"
	apperrors "nestify/internal/errors"
	"nestify/internal/logging"
	"nestify/internal/media"
	"nestify/internal/model"
	"nestify/internal/query"
	"nestify/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UpdateProfileInput is a partial self-service update. Nil fields are left as they are.
type UpdateProfileInput struct {
	Name     *string `json:"name" form:"name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" form:"password" validate:"omitempty,min=6,max=72"`
	Phone    *string `json:"phone" form:"phone" validate:"omitempty,phone"`
	Age      *int    `json:"age" form:"age" validate:"omitempty,gte=1,lte=120"`
	Location *string `json:"location" form:"location" validate:"omitempty,max=255"`
	Gender   *string `json:"gender" form:"gender" validate:"omitempty,oneof=male female other"`
}

// AdminUpdateInput is a partial update made by an admin. It can change the
// role and admin flag but never the password.
type AdminUpdateInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Age      *int    `json:"age" validate:"omitempty,gte=1,lte=120"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Role     *string `json:"role" validate:"omitempty,oneof=user broker"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// UserQuery holds the raw admin listing filters.
type UserQuery struct {
	Search  string
	Role    string
	Gender  string
	IsAdmin string
	SortBy  string
}

// UserService exposes profile and user administration operations.
type UserService interface {
	Profile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, actor *model.User, in UpdateProfileInput, photo *multipart.FileHeader) (*model.User, error)
	List(ctx context.Context, actor *model.User, q UserQuery, page query.Page) ([]model.User, int64, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error)
	AdminUpdate(ctx context.Context, actor *model.User, id uuid.UUID, in AdminUpdateInput) (*model.User, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type userService struct {
	repo     repository.UserRepository
	media    media.Delegate
	users    userCache
	validate Validator
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, mediaDelegate media.Delegate, cache *cache.Client, validate Validator) UserService {
	return &userService{repo: repo, media: mediaDelegate, users: userCache{cache: cache}, validate: validate}
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if cached := s.users.get(ctx, id); cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	s.users.set(ctx, user)
	return user, nil
}

// UpdateProfile merges the non-nil fields into the actor's record. A new
// password is hashed; a new photo replaces the old one on the media host.
func (s *userService) UpdateProfile(ctx context.Context, actor *model.User, in UpdateProfileInput, photo *multipart.FileHeader) (*model.User, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, lookupErr(err, "user")
	}

	var columns []string
	set := func(column string, apply func()) {
		apply()
		columns = append(columns, column)
	}

	if in.Name != nil {
		set("name", func() { user.Name = strings.TrimSpace(*in.Name) })
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
			set("email", func() { user.Email = email })
		}
	}
	if in.Password != nil {
		hashed, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		set("password", func() { user.PasswordHash = hashed })
	}
	if in.Phone != nil {
		set("phone", func() { user.Phone = *in.Phone })
	}
	if in.Age != nil {
		set("age", func() { user.Age = *in.Age })
	}
	if in.Location != nil {
		set("location", func() { user.Location = strings.TrimSpace(*in.Location) })
	}
	if in.Gender != nil {
		set("gender", func() { user.Gender = *in.Gender })
	}

	oldPhoto := user.Photo
	if photo != nil {
		url, err := s.media.Upload(ctx, photo)
		if err != nil {
			return nil, err
		}
		set("photo", func() { user.Photo = url })
	}

	if err := s.persist(ctx, user, columns); err != nil {
		if photo != nil {
			releaseImages(ctx, s.media, []string{user.Photo})
		}
		return nil, err
	}
	if photo != nil && oldPhoto != "" {
		releaseImages(ctx, s.media, []string{oldPhoto})
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, actor *model.User, q UserQuery, page query.Page) ([]model.User, int64, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, 0, err
	}

	filter := repository.UserFilter{Search: q.Search, Role: q.Role, Gender: q.Gender}
	if err := query.OneOf("role", q.Role, []string{string(model.RoleUser), string(model.RoleBroker)}); err != nil {
		return nil, 0, err
	}
	if err := query.OneOf("gender", q.Gender, model.Genders); err != nil {
		return nil, 0, err
	}
	isAdmin, err := query.ParseBool("isAdmin", q.IsAdmin)
	if err != nil {
		return nil, 0, err
	}
	filter.IsAdmin = isAdmin
	if filter.Order, err = query.RecencySorts.Order(q.SortBy); err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	return user, nil
}

func (s *userService) AdminUpdate(ctx context.Context, actor *model.User, id uuid.UUID, in AdminUpdateInput) (*model.User, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user")
	}

	var columns []string
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
		columns = append(columns, "name")
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
			user.Email = email
			columns = append(columns, "email")
		}
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
		columns = append(columns, "phone")
	}
	if in.Age != nil {
		user.Age = *in.Age
		columns = append(columns, "age")
	}
	if in.Location != nil {
		user.Location = strings.TrimSpace(*in.Location)
		columns = append(columns, "location")
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
		columns = append(columns, "gender")
	}
	if in.Role != nil {
		user.Role = model.Role(*in.Role)
		columns = append(columns, "role")
	}
	if in.IsAdmin != nil {
		if !*in.IsAdmin && user.ID == actor.ID {
			return nil, apperrors.New(apperrors.ErrInvalidOperation, "admins cannot revoke their own admin access")
		}
		user.IsAdmin = *in.IsAdmin
		columns = append(columns, "is_admin")
	}

	if err := s.persist(ctx, user, columns); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Str("admin_id", actor.ID.String()).Str("user_id", user.ID.String()).Strs("fields", columns).Msg("user updated by admin")
	return user, nil
}

// Delete removes a user. Their listings and requests stay behind and render
// with a placeholder owner.
func (s *userService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if id == actor.ID {
		return apperrors.New(apperrors.ErrInvalidOperation, "admins cannot delete their own account")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupErr(err, "user")
	}
	s.users.invalidate(ctx, id)
	logging.Ctx(ctx).Info().Str("admin_id", actor.ID.String()).Str("user_id", id.String()).Msg("user deleted")
	return nil
}

func (s *userService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return apperrors.ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

func (s *userService) persist(ctx context.Context, user *model.User, columns []string) error {
	if err := s.repo.Update(ctx, user, columns...); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateEmail
		}
		return lookupErr(err, "user")
	}
	s.users.invalidate(ctx, user.ID)
	return nil
}
