package models

import "time"

type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	Age            int       `gorm:"not null;default:0" json:"age"`
	PartnerID      *string   `gorm:"size:36;index" json:"partner_id,omitempty"`
	InvitationCode string    `gorm:"size:8;uniqueIndex;not null" json:"invitation_code"`
	TotalPoints    int       `gorm:"not null;default:0" json:"total_points"`
	CreatedAt      time.Time `json:"created_at"`
}
