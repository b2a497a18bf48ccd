package models

import (
	"time"
)

// User is shared between customers and stylists; Role decides which.
type User struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	Email         string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	EmailVerified bool       `gorm:"not null;default:false" json:"emailVerified"`
	Image         *string    `json:"image,omitempty"`
	Role          string     `gorm:"size:20;not null;default:'user'" json:"role"`
	Banned        bool       `gorm:"default:false" json:"banned"`
	BanReason     *string    `json:"banReason,omitempty"`
	BanExpires    *time.Time `json:"banExpires,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// IsBanned reports whether a ban is currently in effect.
func (u *User) IsBanned() bool {
	if !u.Banned {
		return false
	}
	if u.BanExpires != nil && time.Now().After(*u.BanExpires) {
		return false
	}
	return true
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
