package models

import (
	"time"
)

// Session is a server-side login session. Token holds the SHA-256 hex of the
// raw token handed to the client; the raw value is never stored.
type Session struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	IPAddress *string   `json:"ipAddress,omitempty"`
	UserAgent *string   `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
