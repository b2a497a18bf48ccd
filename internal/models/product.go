package models

// Product is a catalog item. Price is in the smallest currency unit.
type Product struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	BrandName string  `gorm:"size:255;not null" json:"brandName"`
	Price     int     `gorm:"not null;check:price >= 0" json:"price"`
	Category  string  `gorm:"size:50;not null;default:'top'" json:"category"`
	Image     *string `json:"image,omitempty"`
}
