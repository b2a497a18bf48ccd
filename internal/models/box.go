package models

import (
	"time"
)

// Box is a curated bundle of products assigned to one customer.
type Box struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	CustomerID string    `gorm:"not null;index" json:"customerId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BoxProduct links a box to a product. The composite primary key keeps a
// product from appearing twice in the same box.
type BoxProduct struct {
	BoxID     string `gorm:"primaryKey" json:"boxId"`
	ProductID string `gorm:"primaryKey" json:"productId"`
}
