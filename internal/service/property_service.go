package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	apperrors "nestify/internal/errors"
	"nestify/internal/logging"
	"nestify/internal/media"
	"nestify/internal/model"
	"nestify/internal/query"
	"nestify/internal/repository"
)

// MaxImagesPerProperty caps how many images one listing can hold.
const MaxImagesPerProperty = 10

// PropertyInput is the create payload.
type PropertyInput struct {
	Title        string          `json:"title" validate:"required,max=200"`
	Description  string          `json:"description" validate:"max=5000"`
	City         string          `json:"city" validate:"required,max=120"`
	Location     string          `json:"location" validate:"required,max=255"`
	Rent         decimal.Decimal `json:"rent" validate:"gte=1"`
	Deposit      decimal.Decimal `json:"deposit" validate:"gte=0"`
	Area         int             `json:"area" validate:"gte=1"`
	PropertyType string          `json:"propertyType" validate:"required,oneof=Apartment 'Independent House' Villa PG Studio Penthouse"`
	NoOfBedroom  int             `json:"noOfBedroom" validate:"gte=0"`
	Bathrooms    int             `json:"bathrooms" validate:"gte=0"`
	BHKType      string          `json:"bhkType" validate:"omitempty,oneof=1RK 1BHK 2BHK 3BHK 4BHK 5BHK+"`
	Amenities    []string        `json:"amenities" validate:"max=50,dive,required,max=60"`
	AllowBroker  bool            `json:"allowBroker"`
}

// PropertyUpdateInput is a partial update. RemoveImages lists image URLs to
// drop from the listing; new images are appended.
type PropertyUpdateInput struct {
	Title        *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,max=5000"`
	City         *string          `json:"city" validate:"omitempty,min=1,max=120"`
	Location     *string          `json:"location" validate:"omitempty,min=1,max=255"`
	Rent         *decimal.Decimal `json:"rent" validate:"omitempty,gte=1"`
	Deposit      *decimal.Decimal `json:"deposit" validate:"omitempty,gte=0"`
	Area         *int             `json:"area" validate:"omitempty,gte=1"`
	PropertyType *string          `json:"propertyType" validate:"omitempty,oneof=Apartment 'Independent House' Villa PG Studio Penthouse"`
	NoOfBedroom  *int             `json:"noOfBedroom" validate:"omitempty,gte=0"`
	Bathrooms    *int             `json:"bathrooms" validate:"omitempty,gte=0"`
	BHKType      *string          `json:"bhkType" validate:"omitempty,oneof=1RK 1BHK 2BHK 3BHK 4BHK 5BHK+"`
	Amenities    *[]string        `json:"amenities" validate:"omitempty,max=50,dive,required,max=60"`
	AllowBroker  *bool            `json:"allowBroker"`
	Status       *string          `json:"status" validate:"omitempty,oneof=Active Inactive"`
	RemoveImages []string         `json:"removeImages" validate:"max=50"`
}

// PropertyQuery holds the raw search parameters.
type PropertyQuery struct {
	Search       string
	PropertyType string
	City         string
	BHKType      string
	PriceRange   string
	SortBy       string
}

// PropertyService manages rental listings.
type PropertyService interface {
	Create(ctx context.Context, actor *model.User, in PropertyInput, images []*multipart.FileHeader) (*model.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Property, error)
	Search(ctx context.Context, q PropertyQuery, page query.Page) ([]model.Property, int64, error)
	Mine(ctx context.Context, actor *model.User, sortBy string, page query.Page) ([]model.Property, int64, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, in PropertyUpdateInput, images []*multipart.FileHeader) (*model.Property, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type propertyService struct {
	repo     repository.PropertyRepository
	media    media.Delegate
	validate Validator
}

// NewPropertyService creates a new property service.
func NewPropertyService(repo repository.PropertyRepository, mediaDelegate media.Delegate, validate Validator) PropertyService {
	return &propertyService{repo: repo, media: mediaDelegate, validate: validate}
}

// Create stores a listing owned by actor. Images are uploaded before the
// insert and released again if the insert fails.
func (s *propertyService) Create(ctx context.Context, actor *model.User, in PropertyInput, images []*multipart.FileHeader) (*model.Property, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if len(images) > MaxImagesPerProperty {
		return nil, apperrors.Validation(fmt.Sprintf("at most %d images are allowed", MaxImagesPerProperty))
	}

	urls, err := uploadAll(ctx, s.media, images)
	if err != nil {
		return nil, err
	}

	property := &model.Property{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		City:         strings.TrimSpace(in.City),
		Location:     strings.TrimSpace(in.Location),
		Rent:         in.Rent,
		Deposit:      in.Deposit,
		Area:         in.Area,
		PropertyType: in.PropertyType,
		NoOfBedroom:  in.NoOfBedroom,
		Bathrooms:    in.Bathrooms,
		BHKType:      in.BHKType,
		Amenities:    cleanList(in.Amenities),
		AllowBroker:  in.AllowBroker,
		ImageURLs:    datatypes.JSONSlice[string](urls),
		OwnerID:      actor.ID,
	}

	if err := s.repo.Create(ctx, property); err != nil {
		releaseImages(ctx, s.media, urls)
		return nil, fmt.Errorf("create property: %w", err)
	}
	property.Owner = actor

	logging.Ctx(ctx).Info().Str("property_id", property.ID.String()).Str("owner_id", actor.ID.String()).Int("images", len(urls)).Msg("property created")
	return property, nil
}

// Get returns a listing and counts the view.
func (s *propertyService) Get(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "property")
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("property_id", id.String()).Msg("failed to count property view")
	} else {
		property.Views++
	}
	return property, nil
}

// Search lists active listings matching q.
func (s *propertyService) Search(ctx context.Context, q PropertyQuery, page query.Page) ([]model.Property, int64, error) {
	filter, err := s.filter(q)
	if err != nil {
		return nil, 0, err
	}
	filter.Status = model.PropertyStatusActive

	properties, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	return properties, total, nil
}

// Mine lists every listing the actor owns, including inactive ones.
func (s *propertyService) Mine(ctx context.Context, actor *model.User, sortBy string, page query.Page) ([]model.Property, int64, error) {
	if actor == nil {
		return nil, 0, apperrors.ErrUnauthorized
	}
	order, err := query.PropertySorts.Order(sortBy)
	if err != nil {
		return nil, 0, err
	}

	owner := actor.ID
	properties, total, err := s.repo.List(ctx, repository.PropertyFilter{OwnerID: &owner, Order: order}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list own properties: %w", err)
	}
	return properties, total, nil
}

func (s *propertyService) filter(q PropertyQuery) (repository.PropertyFilter, error) {
	if err := query.OneOf("propertyType", q.PropertyType, model.PropertyTypes); err != nil {
		return repository.PropertyFilter{}, err
	}
	if err := query.OneOf("bhkType", q.BHKType, model.BHKTypes); err != nil {
		return repository.PropertyFilter{}, err
	}
	price, err := query.ParsePriceRange(q.PriceRange)
	if err != nil {
		return repository.PropertyFilter{}, err
	}
	order, err := query.PropertySorts.Order(q.SortBy)
	if err != nil {
		return repository.PropertyFilter{}, err
	}

	return repository.PropertyFilter{
		Search:       q.Search,
		PropertyType: q.PropertyType,
		City:         q.City,
		BHKType:      q.BHKType,
		Price:        price,
		Order:        order,
	}, nil
}

// Update merges the non-nil fields, appends new images and drops the ones
// listed in RemoveImages. Dropped images are deleted from the media host
// only after the record is saved.
func (s *propertyService) Update(ctx context.Context, actor *model.User, id uuid.UUID, in PropertyUpdateInput, images []*multipart.FileHeader) (*model.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "property")
	}
	if err := RequireOwnerOrAdmin(actor, property.OwnerID); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	var removed []string
	kept := make([]string, 0, len(property.ImageURLs))
	for _, u := range property.ImageURLs {
		if slices.Contains(in.RemoveImages, u) {
			removed = append(removed, u)
			continue
		}
		kept = append(kept, u)
	}
	if len(kept)+len(images) > MaxImagesPerProperty {
		return nil, apperrors.Validation(fmt.Sprintf("at most %d images are allowed", MaxImagesPerProperty))
	}

	columns := applyPropertyUpdate(property, in)

	added, err := uploadAll(ctx, s.media, images)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 || len(removed) > 0 {
		property.ImageURLs = datatypes.JSONSlice[string](append(kept, added...))
		columns = append(columns, "image_urls")
	}

	if err := s.repo.Update(ctx, property, columns...); err != nil {
		releaseImages(ctx, s.media, added)
		return nil, lookupErr(err, "property")
	}
	releaseImages(ctx, s.media, removed)

	return property, nil
}

func applyPropertyUpdate(p *model.Property, in PropertyUpdateInput) []string {
	var columns []string
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
		columns = append(columns, "title")
	}
	if in.Description != nil {
		p.Description = *in.Description
		columns = append(columns, "description")
	}
	if in.City != nil {
		p.City = strings.TrimSpace(*in.City)
		columns = append(columns, "city")
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
		columns = append(columns, "location")
	}
	if in.Rent != nil {
		p.Rent = *in.Rent
		columns = append(columns, "rent")
	}
	if in.Deposit != nil {
		p.Deposit = *in.Deposit
		columns = append(columns, "deposit")
	}
	if in.Area != nil {
		p.Area = *in.Area
		columns = append(columns, "area")
	}
	if in.PropertyType != nil {
		p.PropertyType = *in.PropertyType
		columns = append(columns, "property_type")
	}
	if in.NoOfBedroom != nil {
		p.NoOfBedroom = *in.NoOfBedroom
		columns = append(columns, "no_of_bedroom")
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
		columns = append(columns, "bathrooms")
	}
	if in.BHKType != nil {
		p.BHKType = *in.BHKType
		columns = append(columns, "bhk_type")
	}
	if in.Amenities != nil {
		p.Amenities = cleanList(*in.Amenities)
		columns = append(columns, "amenities")
	}
	if in.AllowBroker != nil {
		p.AllowBroker = *in.AllowBroker
		columns = append(columns, "allow_broker")
	}
	if in.Status != nil {
		p.Status = *in.Status
		columns = append(columns, "status")
	}
	return columns
}

// Delete releases every image of the listing, then removes it. Image
// failures do not stop the delete.
func (s *propertyService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupErr(err, "property")
	}
	if err := RequireOwnerOrAdmin(actor, property.OwnerID); err != nil {
		return err
	}

	if failed := releaseImages(ctx, s.media, property.ImageURLs); len(failed) > 0 {
		logging.Ctx(ctx).Warn().Str("property_id", id.String()).Int("failed", len(failed)).Msg("property deleted with images left on the media host")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupErr(err, "property")
	}
	logging.Ctx(ctx).Info().Str("property_id", id.String()).Str("actor_id", actor.ID.String()).Msg("property deleted")
	return nil
}

// cleanList trims entries and drops blanks, keeping order.
func cleanList(in []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
