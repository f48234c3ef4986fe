package stores

import "howyouknow-backend/internal/models"

// Store lookups return (nil, nil) when the record is absent; a non-nil
// error always means the storage layer itself failed.

type UserStore interface {
	CreateUser(user *models.User) error
	GetUser(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByInvitationCode(code string) (*models.User, error)
	LinkPartners(idA, idB string) error
	AddPoints(userID string, delta int) error
}

type QuestionStore interface {
	CreateQuestion(question *models.Question) error
	GetQuestion(questionID string) (*models.Question, error)
	GetQuestionsByCreator(creatorID string) ([]models.Question, error)
	// GetQuestionsAuthoredForPartner returns every question whose
	// partner_id is the given user, i.e. the questions that user is
	// supposed to answer.
	GetQuestionsAuthoredForPartner(partnerUserID string) ([]models.Question, error)
	GetQuestionsByIDs(ids []string) ([]models.Question, error)
	DeleteQuestion(questionID, creatorID string) error
}

type SessionStore interface {
	Insert(session *models.GameSession) error
	GetByID(sessionID string) (*models.GameSession, error)
	Update(session *models.GameSession) error
	// AppendAnswer persists the answer row together with the session's
	// advanced cursor, score and hint counter as one transaction.
	AppendAnswer(session *models.GameSession, answer *models.Answer) error
	MarkCompleted(sessionID string) error
	ListByUser(userID string) ([]models.GameSession, error)
}

type AnsweredQuestionStore interface {
	GetAnsweredIDs(userID string) (map[string]bool, error)
	RecordAnswered(userID, questionID string) error
}
