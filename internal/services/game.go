package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"howyouknow-backend/internal/models"
	"howyouknow-backend/internal/stores"
	"howyouknow-backend/internal/ws"

	"github.com/google/uuid"
)

const (
	// TimingModeTimed runs a whole-session countdown; reaching zero
	// completes the session with whatever answers were recorded.
	TimingModeTimed = "timed"

	// TimingModeUntimed lets the player take each question at their own
	// pace.
	TimingModeUntimed = "untimed"
)

type GameRules struct {
	ScoringMode         string
	TimingMode          string
	SessionSeconds      int
	QuestionsPerSession int
	HintBudget          int
}

// GameService owns the session lifecycle: drawing questions, timing,
// hint and retry handling, scoring and persistence. All mutating
// operations on one session are serialized through that session's
// runtime mutex.
type GameService struct {
	users     stores.UserStore
	questions stores.QuestionStore
	sessions  stores.SessionStore
	answered  stores.AnsweredQuestionStore
	selection *SelectionService
	evaluator *EvaluatorService
	scoring   *ScoringService
	rules     GameRules
	hub       *ws.Hub

	mu     sync.Mutex
	active map[string]*sessionRuntime
}

func NewGameService(
	users stores.UserStore,
	questions stores.QuestionStore,
	sessions stores.SessionStore,
	answered stores.AnsweredQuestionStore,
	selection *SelectionService,
	evaluator *EvaluatorService,
	scoring *ScoringService,
	rules GameRules,
	hub *ws.Hub,
) *GameService {
	return &GameService{
		users:     users,
		questions: questions,
		sessions:  sessions,
		answered:  answered,
		selection: selection,
		evaluator: evaluator,
		scoring:   scoring,
		rules:     rules,
		hub:       hub,
		active:    make(map[string]*sessionRuntime),
	}
}

// sessionRuntime holds the transient, never-persisted side of an active
// session: the frozen question set, the pending selection, hint and
// retry flags for the current question, and the countdown.
type sessionRuntime struct {
	mu                sync.Mutex
	questions         []models.Question
	selected          models.AnswerValue
	presented         []string
	hintUsed          bool
	awaitingRetry     bool
	pendingAnswer     models.AnswerValue
	retryArmed        bool
	questionStartedAt time.Time
	timeRemaining     int
	timerStop         chan struct{}
	stopOnce          sync.Once
}

func newSessionRuntime(questions []models.Question, rules GameRules) *sessionRuntime {
	return &sessionRuntime{
		questions:         questions,
		selected:          models.NoAnswer(),
		pendingAnswer:     models.NoAnswer(),
		questionStartedAt: time.Now(),
		timeRemaining:     rules.SessionSeconds,
		timerStop:         make(chan struct{}),
	}
}

func (rt *sessionRuntime) resetQuestion() {
	rt.selected = models.NoAnswer()
	rt.presented = nil
	rt.hintUsed = false
	rt.awaitingRetry = false
	rt.pendingAnswer = models.NoAnswer()
	rt.retryArmed = false
	rt.questionStartedAt = time.Now()
}

func (rt *sessionRuntime) stopTimer() {
	rt.stopOnce.Do(func() {
		close(rt.timerStop)
	})
}

// StartGame creates a session from the unanswered questions the user's
// partner authored for them, persists it and starts the countdown in
// timed mode.
func (s *GameService) StartGame(userID string) (*GameState, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PartnerID == nil {
		return nil, ErrNoPartnerLinked
	}

	candidates, err := s.questions.GetQuestionsAuthoredForPartner(userID)
	if err != nil {
		return nil, err
	}
	answeredIDs, err := s.answered.GetAnsweredIDs(userID)
	if err != nil {
		return nil, err
	}

	picked, err := s.selection.Pick(candidates, answeredIDs)
	if err != nil {
		return nil, err
	}

	questionIDs := make(models.StringList, len(picked))
	for i, q := range picked {
		questionIDs[i] = q.ID
	}

	session := &models.GameSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		PartnerID:   *user.PartnerID,
		QuestionIDs: questionIDs,
		CreatedAt:   time.Now(),
	}
	if err := s.sessions.Insert(session); err != nil {
		return nil, err
	}

	rt := newSessionRuntime(picked, s.rules)
	s.mu.Lock()
	s.active[session.ID] = rt
	s.mu.Unlock()

	if s.rules.TimingMode == TimingModeTimed {
		go s.runTimer(session.ID, rt)
	}

	rt.mu.Lock()
	state := s.stateLocked(session, rt)
	rt.mu.Unlock()
	return state, nil
}

// SelectAnswer stores the pending answer candidate. It is ephemeral UI
// state: nothing is validated or persisted until submit.
func (s *GameService) SelectAnswer(sessionID, userID string, value models.AnswerValue) error {
	if _, err := s.loadOwnedSession(sessionID, userID); err != nil {
		return err
	}
	rt, _, err := s.runtime(sessionID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	rt.selected = value
	rt.mu.Unlock()
	return nil
}

// UseHint eliminates half of the incorrect options of the current
// question from the presented set. It reports success with a flag and
// never errors on a rejected request: wrong mode, too few options, an
// exhausted budget and a repeated request are all silent no-ops.
func (s *GameService) UseHint(sessionID, userID string) ([]string, bool, error) {
	rt, _, err := s.runtime(sessionID)
	if err != nil {
		return nil, false, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := s.loadOwnedSession(sessionID, userID)
	if err != nil {
		return nil, false, err
	}
	if session.Completed || session.CurrentIndex >= len(session.QuestionIDs) {
		return nil, false, nil
	}
	if s.scoring.Mode() != ScoringModeModifierAware {
		return nil, false, nil
	}
	if rt.hintUsed || rt.awaitingRetry {
		return nil, false, nil
	}
	if session.HintsUsed >= s.rules.HintBudget {
		return nil, false, nil
	}

	question := rt.questions[session.CurrentIndex]
	options := question.OptionTexts()
	if len(options) <= 3 {
		return nil, false, nil
	}

	correct := question.CorrectAnswer.Text
	var incorrect []string
	for _, opt := range options {
		if opt != correct {
			incorrect = append(incorrect, opt)
		}
	}

	removed := make(map[string]bool)
	s.selection.shuffle(len(incorrect), func(i, j int) {
		incorrect[i], incorrect[j] = incorrect[j], incorrect[i]
	})
	for _, opt := range incorrect[:len(incorrect)/2] {
		removed[opt] = true
	}

	presented := make([]string, 0, len(options)-len(removed))
	for _, opt := range options {
		if !removed[opt] {
			presented = append(presented, opt)
		}
	}

	rt.presented = presented
	rt.hintUsed = true
	return presented, true, nil
}

// SubmitAnswer evaluates and finalizes the answer for the question the
// cursor currently points at. The question id guards against stale
// submissions: a second submit racing for an already-finalized position
// fails with ErrInvalidSessionState instead of overwriting.
//
// In modifier-aware mode a wrong first attempt on a question with more
// than two options is not finalized; the result carries RetryOffered
// and the caller must resolve it via ResolveRetry.
//
// A failure while recording the answered-question mark or crediting
// points is returned together with a valid result: the answer itself is
// already persisted and the session stays playable.
func (s *GameService) SubmitAnswer(sessionID, userID, questionID string, value models.AnswerValue) (*SubmitResult, error) {
	rt, _, err := s.runtime(sessionID)
	if err != nil {
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := s.loadOwnedSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Completed || session.CurrentIndex >= len(session.QuestionIDs) {
		return nil, ErrInvalidSessionState
	}
	if questionID != "" && questionID != session.QuestionIDs[session.CurrentIndex] {
		return nil, ErrInvalidSessionState
	}
	if rt.awaitingRetry {
		return nil, ErrInvalidSessionState
	}

	if value.IsNone() {
		value = rt.selected
	}

	question := rt.questions[session.CurrentIndex]
	isCorrect := s.evaluator.Evaluate(&question, value)

	if !isCorrect && s.scoring.Mode() == ScoringModeModifierAware &&
		!rt.retryArmed && len(question.Options) > 2 {
		rt.awaitingRetry = true
		rt.pendingAnswer = value
		return &SubmitResult{RetryOffered: true, Score: session.Score}, nil
	}

	return s.finalize(session, rt, &question, value, isCorrect, rt.retryArmed)
}

// ResolveRetry settles a pending retry offer. Declining finalizes the
// original incorrect answer; accepting arms the retry so the next
// SubmitAnswer is recorded with RetryUsed regardless of its outcome.
func (s *GameService) ResolveRetry(sessionID, userID string, accept bool) (*SubmitResult, error) {
	rt, _, err := s.runtime(sessionID)
	if err != nil {
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := s.loadOwnedSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Completed || !rt.awaitingRetry {
		return nil, ErrInvalidSessionState
	}

	rt.awaitingRetry = false
	if !accept {
		value := rt.pendingAnswer
		rt.pendingAnswer = models.NoAnswer()
		question := rt.questions[session.CurrentIndex]
		return s.finalize(session, rt, &question, value, false, false)
	}

	rt.pendingAnswer = models.NoAnswer()
	rt.selected = models.NoAnswer()
	rt.retryArmed = true
	return &SubmitResult{RetryAccepted: true, Score: session.Score}, nil
}

func (s *GameService) finalize(
	session *models.GameSession,
	rt *sessionRuntime,
	question *models.Question,
	value models.AnswerValue,
	isCorrect, retryUsed bool,
) (*SubmitResult, error) {
	points := s.scoring.Points(isCorrect, rt.hintUsed, retryUsed)

	answer := &models.Answer{
		SessionID:       session.ID,
		Position:        session.CurrentIndex,
		QuestionID:      question.ID,
		UserAnswer:      value,
		IsCorrect:       isCorrect,
		PointsEarned:    points,
		HintUsed:        rt.hintUsed,
		RetryUsed:       retryUsed,
		TimeSpentMillis: time.Since(rt.questionStartedAt).Milliseconds(),
		AnsweredAt:      time.Now(),
	}

	session.Score += points
	session.CurrentIndex++
	if rt.hintUsed {
		session.HintsUsed++
	}

	if err := s.sessions.AppendAnswer(session, answer); err != nil {
		return nil, err
	}
	session.Answers = append(session.Answers, *answer)

	// The answered mark and the points credit are separate writes; a
	// failure here leaves a detectable inconsistency, not a dead session.
	var sideErr error
	if err := s.answered.RecordAnswered(session.UserID, question.ID); err != nil {
		log.Printf("game: session %s: %v", session.ID, err)
		sideErr = err
	}
	if points > 0 {
		if err := s.users.AddPoints(session.UserID, points); err != nil {
			log.Printf("game: session %s: %v", session.ID, err)
			sideErr = err
		}
	}

	result := &SubmitResult{
		Answer:       answer,
		IsCorrect:    isCorrect,
		PointsEarned: points,
		Score:        session.Score,
	}
	if sideErr != nil {
		result.Warning = sideErr.Error()
	}

	timedOut := s.rules.TimingMode == TimingModeTimed && rt.timeRemaining <= 0
	if session.CurrentIndex >= len(session.QuestionIDs) || timedOut {
		if err := s.sessions.MarkCompleted(session.ID); err != nil {
			if sideErr == nil {
				sideErr = err
			}
			result.Warning = sideErr.Error()
			return result, sideErr
		}
		session.Completed = true
		result.Completed = true
		s.finishRuntime(session.ID, rt)
		s.broadcast(session.ID, "session_completed", session)
		return result, sideErr
	}

	rt.resetQuestion()
	next := rt.questions[session.CurrentIndex]
	result.NextQuestion = questionView(&next, nil)
	s.broadcast(session.ID, "question_advanced", result.NextQuestion)
	return result, sideErr
}

// Tick advances the countdown by one second and reports whether the
// timer should stop. Reaching zero completes the session as-is; no
// answers are synthesized for unreached questions.
func (s *GameService) Tick(sessionID string) bool {
	s.mu.Lock()
	rt, ok := s.active[sessionID]
	s.mu.Unlock()
	if !ok {
		return true
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.timeRemaining <= 0 {
		return true
	}
	rt.timeRemaining--
	s.broadcast(sessionID, "timer_tick", map[string]int{"time_remaining": rt.timeRemaining})
	if rt.timeRemaining > 0 {
		return false
	}

	session, err := s.loadSession(sessionID)
	if err != nil {
		log.Printf("game: session %s: time up: %v", sessionID, err)
		return true
	}
	if !session.Completed {
		if err := s.sessions.MarkCompleted(sessionID); err != nil {
			log.Printf("game: session %s: %v", sessionID, err)
			return true
		}
		session.Completed = true
		s.broadcast(sessionID, "session_completed", session)
	}
	s.finishRuntime(sessionID, rt)
	return true
}

// Abandon drops the runtime and cancels the timer, e.g. when the player
// closes the game screen. The persisted session is left as-is.
func (s *GameService) Abandon(sessionID, userID string) error {
	if _, err := s.loadOwnedSession(sessionID, userID); err != nil {
		return err
	}

	s.mu.Lock()
	rt, ok := s.active[sessionID]
	delete(s.active, sessionID)
	s.mu.Unlock()
	if ok {
		rt.stopTimer()
	}
	return nil
}

// GetState returns the session together with the current question as
// presented (hint eliminations applied) and the remaining time.
func (s *GameService) GetState(sessionID, userID string) (*GameState, error) {
	session, err := s.loadOwnedSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return &GameState{
			Session:        session,
			TotalQuestions: len(session.QuestionIDs),
		}, nil
	}

	rt, _, err := s.runtime(sessionID)
	if err != nil {
		return nil, err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return s.stateLocked(session, rt), nil
}

// ListSessions returns the user's session history, newest first.
func (s *GameService) ListSessions(userID string) ([]models.GameSession, error) {
	return s.sessions.ListByUser(userID)
}

func (s *GameService) stateLocked(session *models.GameSession, rt *sessionRuntime) *GameState {
	state := &GameState{
		Session:        session,
		TotalQuestions: len(session.QuestionIDs),
		AwaitingRetry:  rt.awaitingRetry,
		HintsRemaining: s.rules.HintBudget - session.HintsUsed,
	}
	if rt.hintUsed {
		state.HintsRemaining--
	}
	if s.rules.TimingMode == TimingModeTimed {
		state.TimeRemaining = rt.timeRemaining
	}
	if !session.Completed && session.CurrentIndex < len(rt.questions) {
		q := rt.questions[session.CurrentIndex]
		state.CurrentQuestion = questionView(&q, rt.presented)
	}
	return state
}

func (s *GameService) loadSession(sessionID string) (*models.GameSession, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// loadOwnedSession additionally checks the caller owns the session.
// Someone else's session is indistinguishable from a missing one.
func (s *GameService) loadOwnedSession(sessionID, userID string) (*models.GameSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// runtime returns the live runtime for a session, rebuilding it from
// storage after a restart. A rebuilt timed session restarts its clock.
func (s *GameService) runtime(sessionID string) (*sessionRuntime, *models.GameSession, error) {
	s.mu.Lock()
	if rt, ok := s.active[sessionID]; ok {
		s.mu.Unlock()
		return rt, nil, nil
	}
	s.mu.Unlock()

	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, nil, err
	}

	loaded, err := s.questions.GetQuestionsByIDs(session.QuestionIDs)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]models.Question, len(loaded))
	for _, q := range loaded {
		byID[q.ID] = q
	}
	ordered := make([]models.Question, 0, len(session.QuestionIDs))
	for _, id := range session.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			return nil, nil, fmt.Errorf("session %s references missing question %s", sessionID, id)
		}
		ordered = append(ordered, q)
	}

	rt := newSessionRuntime(ordered, s.rules)

	s.mu.Lock()
	if existing, ok := s.active[sessionID]; ok {
		s.mu.Unlock()
		return existing, session, nil
	}
	if !session.Completed {
		s.active[sessionID] = rt
	}
	s.mu.Unlock()

	if !session.Completed && s.rules.TimingMode == TimingModeTimed {
		go s.runTimer(sessionID, rt)
	}
	return rt, session, nil
}

func (s *GameService) finishRuntime(sessionID string, rt *sessionRuntime) {
	rt.stopTimer()
	s.mu.Lock()
	delete(s.active, sessionID)
	s.mu.Unlock()
}

func (s *GameService) runTimer(sessionID string, rt *sessionRuntime) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-rt.timerStop:
			return
		case <-ticker.C:
			if s.Tick(sessionID) {
				return
			}
		}
	}
}

func (s *GameService) broadcast(sessionID, msgType string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(sessionID, ws.WSMessage{Type: msgType, Data: data})
}

func questionView(q *models.Question, presented []string) *QuestionView {
	options := presented
	if options == nil {
		options = q.OptionTexts()
	}
	return &QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Type:    q.Type,
		Options: options,
		Media:   q.Media,
	}
}

// QuestionView is the question as shown to the player: the correct
// answer is never included.
type QuestionView struct {
	ID      string             `json:"id"`
	Text    string             `json:"text"`
	Type    string             `json:"type"`
	Options []string           `json:"options"`
	Media   []models.MediaItem `json:"media,omitempty"`
}

type GameState struct {
	Session         *models.GameSession `json:"session"`
	TotalQuestions  int                 `json:"total_questions"`
	CurrentQuestion *QuestionView       `json:"current_question,omitempty"`
	TimeRemaining   int                 `json:"time_remaining,omitempty"`
	AwaitingRetry   bool                `json:"awaiting_retry"`
	HintsRemaining  int                 `json:"hints_remaining"`
}

type SubmitResult struct {
	Answer        *models.Answer `json:"answer,omitempty"`
	IsCorrect     bool           `json:"is_correct"`
	PointsEarned  int            `json:"points_earned"`
	Score         int            `json:"score"`
	RetryOffered  bool           `json:"retry_offered,omitempty"`
	RetryAccepted bool           `json:"retry_accepted,omitempty"`
	Completed     bool           `json:"completed"`
	NextQuestion  *QuestionView  `json:"next_question,omitempty"`

	// Warning is set when the answer was finalized but a follow-up write
	// (answered mark, points credit, completion flag) failed.
	Warning string `json:"warning,omitempty"`
}
