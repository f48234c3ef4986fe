package stores

import (
	"errors"
	"fmt"

	"howyouknow-backend/internal/models"

	"gorm.io/gorm"
)

type GormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db}
}

func (s *GormSessionStore) Insert(session *models.GameSession) error {
	if err := s.db.Create(session).Error; err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *GormSessionStore) GetByID(sessionID string) (*models.GameSession, error) {
	var session models.GameSession
	err := s.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

func (s *GormSessionStore) Update(session *models.GameSession) error {
	err := s.db.Model(&models.GameSession{}).Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"current_index": session.CurrentIndex,
			"score":         session.Score,
			"hints_used":    session.HintsUsed,
			"completed":     session.Completed,
		}).Error
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (s *GormSessionStore) AppendAnswer(session *models.GameSession, answer *models.Answer) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(answer).Error; err != nil {
			return err
		}
		return tx.Model(&models.GameSession{}).Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"current_index": session.CurrentIndex,
				"score":         session.Score,
				"hints_used":    session.HintsUsed,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("append answer: %w", err)
	}
	return nil
}

func (s *GormSessionStore) MarkCompleted(sessionID string) error {
	err := s.db.Model(&models.GameSession{}).Where("id = ?", sessionID).
		Update("completed", true).Error
	if err != nil {
		return fmt.Errorf("mark session completed: %w", err)
	}
	return nil
}

func (s *GormSessionStore) ListByUser(userID string) ([]models.GameSession, error) {
	var sessions []models.GameSession
	err := s.db.Where("user_id = ?", userID).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
