package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nestify/internal/model"
	"nestify/internal/query"
)

// UserFilter narrows a user listing.
type UserFilter struct {
	Search  string
	Role    string
	Gender  string
	IsAdmin *bool
	Order   string
}

// UserSearchColumns are matched by UserFilter.Search.
var UserSearchColumns = []string{"name", "email", "location"}

func (f UserFilter) scopes() []query.Scope {
	return []query.Scope{
		query.Search(f.Search, UserSearchColumns...),
		query.Equals("role", f.Role),
		query.Equals("gender", f.Gender),
		query.Bool("is_admin", f.IsAdmin),
	}
}

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User, columns ...string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filter UserFilter, page query.Page) ([]model.User, int64, error)
	Count(ctx context.Context, scopes ...query.Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update writes only the named columns of user.
func (r *userRepository) Update(ctx context.Context, user *model.User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(user).Select(columns).Updates(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, page query.Page) ([]model.User, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.User{}).Scopes(filter.scopes()...)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]model.User, 0, page.Limit)
	if err := scoped().Scopes(query.OrderScope(filter.Order), page.Scope()).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Count(ctx context.Context, scopes ...query.Scope) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Scopes(scopes...).Count(&n).Error
	return n, err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
