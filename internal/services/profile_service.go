package services

import (
	"errors"
	"fmt"

	"github.com/stylahq/styla-backend/internal/dto"
	"github.com/stylahq/styla-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService manages customer measurement/preference profiles.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// SubmitProfile upserts the caller's profile keyed on user_id, so
// resubmitting the onboarding form updates in place instead of stacking
// duplicate rows.
func (s *ProfileService) SubmitProfile(userID string, req *dto.ProfileRequest) error {
	detail := models.UserDetail{
		UserID:          userID,
		Age:             &req.Age,
		Job:             &req.Job,
		Height:          &req.Height,
		Weight:          &req.Weight,
		Bust:            &req.Bust,
		Waist:           &req.Waist,
		Hip:             &req.Hip,
		ShoeSize:        &req.ShoeSize,
		ColorPreference: &req.Color,
		StylePreference: &req.Style,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&detail).Error
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *ProfileService) GetProfile(userID string) (*models.UserDetail, error) {
	var detail models.UserDetail
	if err := s.db.First(&detail, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// ListCustomers returns every role-user account joined with its profile.
// Accounts that have not finished onboarding are excluded by the inner join,
// which is what the stylist dashboard wants.
func (s *ProfileService) ListCustomers() ([]dto.CustomerRow, error) {
	type customerRow struct {
		models.User
		models.UserDetail
	}

	var rows []customerRow
	err := s.db.Table("users").
		Select("users.*, user_details.*").
		Joins("INNER JOIN user_details ON user_details.user_id = users.id").
		Where("users.role = ?", "user").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	customers := make([]dto.CustomerRow, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, dto.CustomerRow{
			User:       row.User,
			UserDetail: row.UserDetail,
		})
	}
	return customers, nil
}
