package stores

import (
	"errors"
	"fmt"

	"howyouknow-backend/internal/models"

	"gorm.io/gorm"
)

type GormQuestionStore struct {
	db *gorm.DB
}

func NewGormQuestionStore(db *gorm.DB) *GormQuestionStore {
	return &GormQuestionStore{db: db}
}

func (s *GormQuestionStore) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		})
}

func (s *GormQuestionStore) CreateQuestion(question *models.Question) error {
	if err := s.db.Create(question).Error; err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (s *GormQuestionStore) GetQuestion(questionID string) (*models.Question, error) {
	var question models.Question
	err := s.preload(s.db).First(&question, "id = ?", questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return &question, nil
}

func (s *GormQuestionStore) GetQuestionsByCreator(creatorID string) ([]models.Question, error) {
	var questions []models.Question
	err := s.preload(s.db).Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("get questions by creator: %w", err)
	}
	return questions, nil
}

func (s *GormQuestionStore) GetQuestionsAuthoredForPartner(partnerUserID string) ([]models.Question, error) {
	var questions []models.Question
	err := s.preload(s.db).Where("partner_id = ?", partnerUserID).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("get questions for partner: %w", err)
	}
	return questions, nil
}

func (s *GormQuestionStore) GetQuestionsByIDs(ids []string) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []models.Question
	err := s.preload(s.db).Where("id IN ?", ids).Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("get questions by ids: %w", err)
	}
	return questions, nil
}

func (s *GormQuestionStore) DeleteQuestion(questionID, creatorID string) error {
	result := s.db.Where("id = ? AND creator_id = ?", questionID, creatorID).
		Delete(&models.Question{})
	if result.Error != nil {
		return fmt.Errorf("delete question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete question: not found")
	}
	return nil
}
