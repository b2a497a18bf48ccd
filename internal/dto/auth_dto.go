package dto

import "github.com/stylahq/styla-backend/internal/models"

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the raw session token; the stored session only keeps
// its hash.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type SessionResponse struct {
	Session models.Session `json:"session"`
	User    models.User    `json:"user"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Message string `json:"message"`
	DB      string `json:"db"`
}
