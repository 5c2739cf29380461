package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey authorizes callers of the participant endpoints of the mission API.
type APIKey struct {
	gorm.Model
	Key        string     `json:"key" gorm:"uniqueIndex"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

func (k APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}
