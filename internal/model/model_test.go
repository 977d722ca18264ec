package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreateDefaults(t *testing.T) {
	u := &User{Name: "Ann"}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, SubscriptionInactive, u.SubscriptionStatus)
}

func TestProperty_BeforeCreateDefaults(t *testing.T) {
	p := &Property{Title: "Loft"}
	assert.NoError(t, p.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, PropertyStatusActive, p.Status)
	assert.NotNil(t, p.Amenities)
	assert.NotNil(t, p.ImageURLs)
}

func TestUser_HasActiveSubscription(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&User{SubscriptionStatus: SubscriptionInactive}).HasActiveSubscription(now))
	assert.True(t, (&User{SubscriptionStatus: SubscriptionActive}).HasActiveSubscription(now))
	assert.True(t, (&User{SubscriptionStatus: SubscriptionActive, SubscriptionExpiresAt: &future}).HasActiveSubscription(now))
	assert.False(t, (&User{SubscriptionStatus: SubscriptionActive, SubscriptionExpiresAt: &past}).HasActiveSubscription(now))
}
