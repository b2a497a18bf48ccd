package models

import (
	"time"
)

// Account links a User to a credential provider. For the "credential"
// provider the Password column carries the bcrypt hash.
type Account struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	AccountID  string    `gorm:"not null" json:"accountId"`
	ProviderID string    `gorm:"size:50;not null" json:"providerId"`
	UserID     string    `gorm:"not null;index" json:"userId"`
	Password   *string   `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Verification stores provider-owned verification tokens (email
// verification, password reset). Migrated for schema parity; no API in this
// service writes to it.
type Verification struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Identifier string    `gorm:"not null;index" json:"identifier"`
	Value      string    `gorm:"not null" json:"value"`
	ExpiresAt  time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
