package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role distinguishes regular renters from brokers listing on behalf of owners.
type Role string

const (
	RoleUser   Role = "user"
	RoleBroker Role = "broker"
)

// Subscription states stored on User.SubscriptionStatus.
const (
	SubscriptionInactive = "inactive"
	SubscriptionActive   = "active"
)

// Genders accepted on a user profile. Empty means not provided.
var Genders = []string{"male", "female", "other"}

// User represents a registered marketplace member.
type User struct {
	ID                    uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name                  string     `json:"name" gorm:"size:255;not null"`
	Email                 string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash          string     `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Role                  Role       `json:"role" gorm:"size:20;not null;default:'user';index"`
	Age                   int        `json:"age"`
	Phone                 string     `json:"phone" gorm:"size:20"`
	Location              string     `json:"location" gorm:"size:255"`
	Photo                 string     `json:"photo" gorm:"size:512"`
	Gender                string     `json:"gender" gorm:"size:10"`
	IsAdmin               bool       `json:"isAdmin" gorm:"default:false;index"`
	SubscriptionStatus    string     `json:"subscriptionStatus" gorm:"size:20;not null;default:'inactive'"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID and defaults before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = SubscriptionInactive
	}
	return nil
}

// HasActiveSubscription reports whether the subscription is active and unexpired at now.
func (u *User) HasActiveSubscription(now time.Time) bool {
	if u.SubscriptionStatus != SubscriptionActive {
		return false
	}
	return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(now)
}
