package stores

import (
	"fmt"
	"time"

	"howyouknow-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormAnsweredQuestionStore struct {
	db *gorm.DB
}

func NewGormAnsweredQuestionStore(db *gorm.DB) *GormAnsweredQuestionStore {
	return &GormAnsweredQuestionStore{db: db}
}

func (s *GormAnsweredQuestionStore) GetAnsweredIDs(userID string) (map[string]bool, error) {
	var ids []string
	err := s.db.Model(&models.AnsweredQuestion{}).
		Where("user_id = ?", userID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("get answered ids: %w", err)
	}

	answered := make(map[string]bool, len(ids))
	for _, id := range ids {
		answered[id] = true
	}
	return answered, nil
}

func (s *GormAnsweredQuestionStore) RecordAnswered(userID, questionID string) error {
	record := models.AnsweredQuestion{
		UserID:     userID,
		QuestionID: questionID,
		AnsweredAt: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("record answered question: %w", err)
	}
	return nil
}
