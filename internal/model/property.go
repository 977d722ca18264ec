package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property listing states.
const (
	PropertyStatusActive   = "Active"
	PropertyStatusInactive = "Inactive"
)

// PropertyTypes is the closed set of listing categories.
var PropertyTypes = []string{"Apartment", "Independent House", "Villa", "PG", "Studio", "Penthouse"}

// BHKTypes is the closed set of layout labels. A property may also leave it empty.
var BHKTypes = []string{"1RK", "1BHK", "2BHK", "3BHK", "4BHK", "5BHK+"}

// Property represents a rental listing owned by a user.
type Property struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string                      `json:"title" gorm:"size:255;not null"`
	Description  string                      `json:"description" gorm:"type:text"`
	City         string                      `json:"city" gorm:"size:120;not null;index"`
	Location     string                      `json:"location" gorm:"size:255;not null"`
	Rent         decimal.Decimal             `json:"rent" gorm:"type:decimal(12,2);not null;index"`
	Deposit      decimal.Decimal             `json:"deposit" gorm:"type:decimal(12,2);not null;default:0"`
	Area         int                         `json:"area" gorm:"not null"`
	PropertyType string                      `json:"propertyType" gorm:"size:40;not null;index"`
	NoOfBedroom  int                         `json:"noOfBedroom"`
	Bathrooms    int                         `json:"bathrooms"`
	BHKType      string                      `json:"bhkType" gorm:"column:bhk_type;size:10"`
	Amenities    datatypes.JSONSlice[string] `json:"amenities"`
	AllowBroker  bool                        `json:"allowBroker" gorm:"default:false"`
	ImageURLs    datatypes.JSONSlice[string] `json:"imageUrls" gorm:"column:image_urls"`
	OwnerID      uuid.UUID                   `json:"ownerId" gorm:"type:char(36);not null;index"`
	Status       string                      `json:"status" gorm:"size:20;not null;default:'Active';index"`
	Views        int                         `json:"views" gorm:"not null;default:0"`
	CreatedAt    time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time                   `json:"updatedAt"`

	// Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID and defaults before creating the record.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PropertyStatusActive
	}
	if p.Amenities == nil {
		p.Amenities = datatypes.JSONSlice[string]{}
	}
	if p.ImageURLs == nil {
		p.ImageURLs = datatypes.JSONSlice[string]{}
	}
	return nil
}
