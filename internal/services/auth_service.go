package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stylahq/styla-backend/internal/config"
	"github.com/stylahq/styla-backend/internal/dto"
	"github.com/stylahq/styla-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUserBanned         = errors.New("account is banned")
)

const credentialProvider = "credential"

type AuthService struct {
	db            *gorm.DB
	sessionExpiry time.Duration
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, sessionExpiry: cfg.SessionExpiry}
}

func (s *AuthService) SignUp(req *dto.SignUpRequest, ip, userAgent string) (*dto.AuthResponse, error) {
	if req.Email == "" || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Email: req.Email,
		Role:  "user",
	}
	hashStr := string(hash)
	account := models.Account{
		ID:         uuid.NewString(),
		AccountID:  user.ID,
		ProviderID: credentialProvider,
		UserID:     user.ID,
		Password:   &hashStr,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.startSession(&user, ip, userAgent)
}

func (s *AuthService) SignIn(req *dto.SignInRequest, ip, userAgent string) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.IsBanned() {
		return nil, ErrUserBanned
	}

	var account models.Account
	err := s.db.Where("user_id = ? AND provider_id = ?", user.ID, credentialProvider).
		First(&account).Error
	if err != nil || account.Password == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(&user, ip, userAgent)
}

// SignOut deletes the session behind the raw token. Unknown tokens are a
// no-op, matching the idempotent sign-out the client expects.
func (s *AuthService) SignOut(token string) error {
	return s.db.Where("token = ?", hashToken(token)).Delete(&models.Session{}).Error
}

// ResolveSession maps a raw token to its (user, session) pair. Expired
// sessions are deleted on sight; banned users resolve to no identity.
func (s *AuthService) ResolveSession(token string) (*models.User, *models.Session, error) {
	var session models.Session
	if err := s.db.Where("token = ?", hashToken(token)).First(&session).Error; err != nil {
		return nil, nil, ErrInvalidSession
	}

	if session.Expired() {
		s.db.Delete(&models.Session{}, "id = ?", session.ID)
		return nil, nil, ErrInvalidSession
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", session.UserID).Error; err != nil {
		return nil, nil, ErrInvalidSession
	}

	if user.IsBanned() {
		return nil, nil, ErrUserBanned
	}

	return &user, &session, nil
}

func (s *AuthService) startSession(user *models.User, ip, userAgent string) (*dto.AuthResponse, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	session := models.Session{
		ID:        uuid.NewString(),
		Token:     hashToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionExpiry),
	}
	if ip != "" {
		session.IPAddress = &ip
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &dto.AuthResponse{Token: rawToken, User: *user}, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
