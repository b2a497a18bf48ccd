package models

// UserDetail holds a customer's measurements and style preferences.
// One row per user; profile submission upserts on UserID.
type UserDetail struct {
	UserID          string  `gorm:"primaryKey" json:"userId"`
	Height          *int    `json:"height"`
	Age             *int    `json:"age"`
	Weight          *int    `json:"weight"`
	Bust            *int    `json:"bust"`
	Waist           *int    `json:"waist"`
	Hip             *int    `json:"hip"`
	ShoeSize        *int    `json:"shoeSize"`
	ColorPreference *string `json:"colorPreference"`
	StylePreference *string `json:"stylePreference"`
	Job             *string `json:"job"`
}
