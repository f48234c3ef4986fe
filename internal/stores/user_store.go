package stores

import (
	"errors"
	"fmt"

	"howyouknow-backend/internal/models"

	"gorm.io/gorm"
)

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) CreateUser(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormUserStore) GetUser(userID string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) GetUserByInvitationCode(code string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "invitation_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by invitation code: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) LinkPartners(idA, idB string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", idA).
			Update("partner_id", idB).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", idB).
			Update("partner_id", idA).Error
	})
	if err != nil {
		return fmt.Errorf("link partners: %w", err)
	}
	return nil
}

func (s *GormUserStore) AddPoints(userID string, delta int) error {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("total_points", gorm.Expr("total_points + ?", delta)).Error
	if err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	return nil
}
