package services

import (
	"errors"
	"fmt"
	"time"

	"howyouknow-backend/internal/models"
	"howyouknow-backend/internal/stores"

	"github.com/google/uuid"
)

// QuestionService covers authoring: users create questions about
// themselves for their partner to answer.
type QuestionService struct {
	users     stores.UserStore
	questions stores.QuestionStore
}

func NewQuestionService(users stores.UserStore, questions stores.QuestionStore) *QuestionService {
	return &QuestionService{users: users, questions: questions}
}

type CreateQuestionInput struct {
	Text          string
	Type          string
	Options       []string
	CorrectAnswer models.AnswerValue
	Media         []MediaInput
}

type MediaInput struct {
	Type         string
	URI          string
	ThumbnailURI string
}

func (s *QuestionService) CreateQuestion(creatorID string, input CreateQuestionInput) (*models.Question, error) {
	creator, err := s.users.GetUser(creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, errors.New("user not found")
	}
	if creator.PartnerID == nil {
		return nil, ErrNoPartnerLinked
	}

	if err := validateQuestionInput(input); err != nil {
		return nil, err
	}

	question := models.Question{
		ID:            uuid.NewString(),
		CreatorID:     creatorID,
		PartnerID:     *creator.PartnerID,
		Text:          input.Text,
		Type:          input.Type,
		CorrectAnswer: input.CorrectAnswer,
		CreatedAt:     time.Now(),
	}
	for i, text := range input.Options {
		question.Options = append(question.Options, models.QuestionOption{
			QuestionID: question.ID,
			Text:       text,
			OrderNum:   i,
		})
	}
	for i, m := range input.Media {
		mediaType := m.Type
		if mediaType == "" {
			mediaType = models.MediaTypeImage
		}
		question.Media = append(question.Media, models.MediaItem{
			ID:           uuid.NewString(),
			QuestionID:   question.ID,
			Type:         mediaType,
			URI:          m.URI,
			ThumbnailURI: m.ThumbnailURI,
			OrderNum:     i,
		})
	}

	if err := s.questions.CreateQuestion(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) ListMyQuestions(creatorID string) ([]models.Question, error) {
	return s.questions.GetQuestionsByCreator(creatorID)
}

func (s *QuestionService) DeleteQuestion(questionID, creatorID string) error {
	return s.questions.DeleteQuestion(questionID, creatorID)
}

func validateQuestionInput(input CreateQuestionInput) error {
	if input.Text == "" {
		return errors.New("question text is required")
	}

	switch input.Type {
	case models.QuestionTypeMultipleChoice:
		if len(input.Options) < 2 {
			return errors.New("multiple choice needs at least two options")
		}
		if !containsOption(input.Options, input.CorrectAnswer) {
			return errors.New("correct answer must be one of the options")
		}
	case models.QuestionTypeYesNo:
		if input.CorrectAnswer.Kind != models.AnswerKindChoice {
			return errors.New("yes/no needs a choice answer")
		}
	case models.QuestionTypeRanking, models.QuestionTypeSurvey:
		if input.CorrectAnswer.Kind != models.AnswerKindSequence {
			return errors.New("ranking needs an ordered answer")
		}
		if len(input.Options) < 2 {
			return errors.New("ranking needs at least two options")
		}
	case models.QuestionTypeOpen:
		// Free text; any non-none answer is acceptable.
		if input.CorrectAnswer.IsNone() {
			return errors.New("open question needs a reference answer")
		}
	default:
		return fmt.Errorf("unknown question type %q", input.Type)
	}

	seen := make(map[string]bool, len(input.Options))
	for _, opt := range input.Options {
		if seen[opt] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
	return nil
}

func containsOption(options []string, answer models.AnswerValue) bool {
	for _, opt := range options {
		if opt == answer.Text {
			return true
		}
	}
	return false
}
