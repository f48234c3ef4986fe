package models

import "time"

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeYesNo          = "yes_no"
	QuestionTypeOpen           = "open"
	QuestionTypeRanking        = "ranking"
	QuestionTypeSurvey         = "survey"
)

type Question struct {
	ID            string           `gorm:"primaryKey;size:36" json:"id"`
	CreatorID     string           `gorm:"size:36;not null;index" json:"creator_id"`
	PartnerID     string           `gorm:"size:36;not null;index" json:"partner_id"`
	Text          string           `gorm:"type:text;not null" json:"text"`
	Type          string           `gorm:"size:20;not null" json:"type"`
	Options       []QuestionOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Media         []MediaItem      `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
	CorrectAnswer AnswerValue      `gorm:"type:jsonb" json:"correct_answer"`
	CreatedAt     time.Time        `json:"created_at"`
}

// OptionTexts returns the option strings in authored order.
func (q *Question) OptionTexts() []string {
	texts := make([]string, len(q.Options))
	for i, o := range q.Options {
		texts[i] = o.Text
	}
	return texts
}

type QuestionOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID string `gorm:"size:36;not null;index" json:"question_id"`
	Text       string `gorm:"size:500;not null" json:"text"`
	OrderNum   int    `gorm:"not null;default:0" json:"order_num"`
}

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeAudio = "audio"
)

type MediaItem struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	QuestionID   string `gorm:"size:36;not null;index" json:"question_id"`
	Type         string `gorm:"size:10;not null;default:'image'" json:"type"`
	URI          string `gorm:"size:500;not null" json:"uri"`
	ThumbnailURI string `gorm:"size:500" json:"thumbnail_uri,omitempty"`
	OrderNum     int    `gorm:"not null;default:0" json:"order_num"`
}
