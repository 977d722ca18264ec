package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomRequest is a roommate-wanted post: someone looking for a room in a location.
type RoomRequest struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	Location    string    `json:"location" gorm:"size:255;not null;index"`
	Budget      string    `json:"budget" gorm:"size:32;not null"` // numeric text, validated on write
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *RoomRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
