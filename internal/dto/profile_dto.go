package dto

import "github.com/stylahq/styla-backend/internal/models"

// ProfileRequest is the onboarding form body. Field names follow the form:
// "color" and "style" arrive short, the stored columns are the long names.
type ProfileRequest struct {
	Age      int    `json:"age"`
	Job      string `json:"job"`
	Height   int    `json:"height"`
	Weight   int    `json:"weight"`
	Bust     int    `json:"bust"`
	Waist    int    `json:"waist"`
	Hip      int    `json:"hip"`
	ShoeSize int    `json:"shoeSize"`
	Color    string `json:"color"`
	Style    string `json:"style"`
}

// CustomerRow is one role-user account joined with its profile.
type CustomerRow struct {
	User       models.User       `json:"user"`
	UserDetail models.UserDetail `json:"userDetail"`
}
