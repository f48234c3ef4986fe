package models

import "time"

// GameSession is one playthrough of a frozen, ordered set of questions.
// QuestionIDs never changes after creation; Answers grow append-only and
// len(Answers) == CurrentIndex while the session is in progress. Once
// Completed is set the session is immutable.
type GameSession struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       string     `gorm:"size:36;not null;index" json:"user_id"`
	PartnerID    string     `gorm:"size:36;not null" json:"partner_id"`
	QuestionIDs  StringList `gorm:"type:jsonb;not null" json:"question_ids"`
	CurrentIndex int        `gorm:"not null;default:0" json:"current_index"`
	Score        int        `gorm:"not null;default:0" json:"score"`
	HintsUsed    int        `gorm:"not null;default:0" json:"hints_used"`
	Completed    bool       `gorm:"not null;default:false" json:"completed"`
	Answers      []Answer   `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Answer records one finalized submission. Rows are never updated; the
// (session_id, position) unique index makes a double append for the same
// cursor position a constraint violation rather than a silent overwrite.
type Answer struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	SessionID       string      `gorm:"size:36;not null;uniqueIndex:idx_answer_position" json:"session_id"`
	Position        int         `gorm:"not null;uniqueIndex:idx_answer_position" json:"position"`
	QuestionID      string      `gorm:"size:36;not null" json:"question_id"`
	UserAnswer      AnswerValue `gorm:"type:jsonb" json:"user_answer"`
	IsCorrect       bool        `gorm:"not null" json:"is_correct"`
	PointsEarned    int         `gorm:"not null;default:0" json:"points_earned"`
	HintUsed        bool        `gorm:"not null;default:false" json:"hint_used"`
	RetryUsed       bool        `gorm:"not null;default:false" json:"retry_used"`
	TimeSpentMillis int64       `gorm:"not null;default:0" json:"time_spent_millis"`
	AnsweredAt      time.Time   `json:"answered_at"`
}

// AnsweredQuestion marks a question as seen by a user. Rows are
// append-only; a question answered once is excluded from every future
// session for that user, regardless of correctness.
type AnsweredQuestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:36;not null;uniqueIndex:idx_user_question" json:"user_id"`
	QuestionID string    `gorm:"size:36;not null;uniqueIndex:idx_user_question" json:"question_id"`
	AnsweredAt time.Time `json:"answered_at"`
}
