package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a maintained summary record for a two-party thread,
// updated in the same transaction as every message write. The Key is the
// two participant ids sorted and joined, so it is order-independent and
// doubles as the thread's public identifier. ParticipantOne is always the
// lexically smaller id.
type Conversation struct {
	ID  uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Key string    `gorm:"size:80;not null;uniqueIndex" json:"key"`

	ParticipantOneID   uuid.UUID `gorm:"type:uuid;not null;index" json:"participant_one_id"`
	ParticipantOneName string    `gorm:"size:255;not null" json:"participant_one_name"`
	ParticipantTwoID   uuid.UUID `gorm:"type:uuid;not null;index" json:"participant_two_id"`
	ParticipantTwoName string    `gorm:"size:255;not null" json:"participant_two_name"`

	LastMessage  string    `gorm:"type:text" json:"last_message"`
	LastSenderID uuid.UUID `gorm:"type:uuid" json:"last_sender_id"`

	UnreadOne int `gorm:"default:0" json:"unread_one"`
	UnreadTwo int `gorm:"default:0" json:"unread_two"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantOneID == userID || c.ParticipantTwoID == userID
}

func (c *Conversation) OtherParticipant(userID uuid.UUID) (uuid.UUID, string) {
	if c.ParticipantOneID == userID {
		return c.ParticipantTwoID, c.ParticipantTwoName
	}
	return c.ParticipantOneID, c.ParticipantOneName
}

func (c *Conversation) UnreadFor(userID uuid.UUID) int {
	if c.ParticipantOneID == userID {
		return c.UnreadOne
	}
	return c.UnreadTwo
}
