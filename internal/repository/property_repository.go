package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nestify/internal/model"
	"nestify/internal/query"
)

// PropertyFilter narrows a property listing.
type PropertyFilter struct {
	Search       string
	PropertyType string
	City         string
	BHKType      string
	Price        *query.PriceRange
	OwnerID      *uuid.UUID
	Status       string
	Order        string
}

// PropertySearchColumns are matched by PropertyFilter.Search.
var PropertySearchColumns = []string{"title", "city", "location", "property_type"}

func (f PropertyFilter) scopes() []query.Scope {
	scopes := []query.Scope{
		query.Search(f.Search, PropertySearchColumns...),
		query.Equals("property_type", f.PropertyType),
		query.EqualsFold("city", f.City),
		query.Equals("bhk_type", f.BHKType),
		query.Equals("status", f.Status),
		f.Price.Scope("rent"),
	}
	if f.OwnerID != nil {
		owner := *f.OwnerID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("owner_id = ?", owner)
		})
	}
	return scopes
}

// PropertyRepository defines property persistence operations.
type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, property *model.Property, columns ...string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error)
	List(ctx context.Context, filter PropertyFilter, page query.Page) ([]model.Property, int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, scopes ...query.Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a new property.
func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(property).Error
}

// Update writes only the named columns of property.
func (r *propertyRepository) Update(ctx context.Context, property *model.Property, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(property).Omit("Owner").Select(columns).Updates(property)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a property by ID with its owner loaded.
func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	var property model.Property
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// List returns one page of properties matching filter and the total match count.
func (r *propertyRepository) List(ctx context.Context, filter PropertyFilter, page query.Page) ([]model.Property, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Property{}).Scopes(filter.scopes()...)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	properties := make([]model.Property, 0, page.Limit)
	if err := scoped().
		Scopes(query.OrderScope(filter.Order), page.Scope()).
		Preload("Owner").
		Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// IncrementViews bumps the popularity counter without touching updated_at.
func (r *propertyRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Property{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *propertyRepository) Count(ctx context.Context, scopes ...query.Scope) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Property{}).Scopes(scopes...).Count(&n).Error
	return n, err
}

// Delete removes a property.
func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
