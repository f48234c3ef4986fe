package services

import (
	"errors"
	"fmt"
	"sync"

	"howyouknow-backend/internal/models"
)

// In-memory store fakes. Lookups copy values so callers see fresh reads
// like the gorm-backed stores would produce.

type memoryUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]*models.User)}
}

func (s *memoryUserStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memoryUserStore) GetUser(userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (s *memoryUserStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) GetUserByInvitationCode(code string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.InvitationCode == code {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) LinkPartners(idA, idB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, okA := s.users[idA]
	b, okB := s.users[idB]
	if !okA || !okB {
		return errors.New("user not found")
	}
	a.PartnerID = &b.ID
	b.PartnerID = &a.ID
	return nil
}

func (s *memoryUserStore) AddPoints(userID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	user.TotalPoints += delta
	return nil
}

type memoryQuestionStore struct {
	mu        sync.Mutex
	questions map[string]*models.Question
}

func newMemoryQuestionStore() *memoryQuestionStore {
	return &memoryQuestionStore{questions: make(map[string]*models.Question)}
}

func (s *memoryQuestionStore) CreateQuestion(question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *question
	s.questions[question.ID] = &cp
	return nil
}

func (s *memoryQuestionStore) GetQuestion(questionID string) (*models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[questionID]
	if !ok {
		return nil, nil
	}
	cp := *question
	return &cp, nil
}

func (s *memoryQuestionStore) GetQuestionsByCreator(creatorID string) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Question
	for _, q := range s.questions {
		if q.CreatorID == creatorID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *memoryQuestionStore) GetQuestionsAuthoredForPartner(partnerUserID string) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Question
	for _, q := range s.questions {
		if q.PartnerID == partnerUserID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *memoryQuestionStore) GetQuestionsByIDs(ids []string) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Question
	for _, id := range ids {
		if q, ok := s.questions[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *memoryQuestionStore) DeleteQuestion(questionID, creatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionID]
	if !ok || q.CreatorID != creatorID {
		return errors.New("delete question: not found")
	}
	delete(s.questions, questionID)
	return nil
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.GameSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*models.GameSession)}
}

func copySession(session *models.GameSession) *models.GameSession {
	cp := *session
	cp.QuestionIDs = append(models.StringList(nil), session.QuestionIDs...)
	cp.Answers = append([]models.Answer(nil), session.Answers...)
	return &cp
}

func (s *memorySessionStore) Insert(session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(session)
	return nil
}

func (s *memorySessionStore) GetByID(sessionID string) (*models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return copySession(session), nil
}

func (s *memorySessionStore) Update(session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[session.ID]
	if !ok {
		return errors.New("update session: not found")
	}
	stored.CurrentIndex = session.CurrentIndex
	stored.Score = session.Score
	stored.HintsUsed = session.HintsUsed
	stored.Completed = session.Completed
	return nil
}

func (s *memorySessionStore) AppendAnswer(session *models.GameSession, answer *models.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[session.ID]
	if !ok {
		return errors.New("append answer: session not found")
	}
	for _, a := range stored.Answers {
		if a.Position == answer.Position {
			return fmt.Errorf("append answer: duplicate position %d", answer.Position)
		}
	}
	stored.Answers = append(stored.Answers, *answer)
	stored.CurrentIndex = session.CurrentIndex
	stored.Score = session.Score
	stored.HintsUsed = session.HintsUsed
	return nil
}

func (s *memorySessionStore) MarkCompleted(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[sessionID]
	if !ok {
		return errors.New("mark completed: session not found")
	}
	stored.Completed = true
	return nil
}

func (s *memorySessionStore) ListByUser(userID string) ([]models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GameSession
	for _, session := range s.sessions {
		if session.UserID == userID {
			out = append(out, *copySession(session))
		}
	}
	return out, nil
}

type memoryAnsweredStore struct {
	mu        sync.Mutex
	answered  map[string]map[string]bool
	recordErr error
}

func newMemoryAnsweredStore() *memoryAnsweredStore {
	return &memoryAnsweredStore{answered: make(map[string]map[string]bool)}
}

func (s *memoryAnsweredStore) GetAnsweredIDs(userID string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.answered[userID]))
	for id := range s.answered[userID] {
		out[id] = true
	}
	return out, nil
}

func (s *memoryAnsweredStore) RecordAnswered(userID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordErr != nil {
		return s.recordErr
	}
	if s.answered[userID] == nil {
		s.answered[userID] = make(map[string]bool)
	}
	s.answered[userID][questionID] = true
	return nil
}
