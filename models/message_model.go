package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConversationKey string    `gorm:"size:80;not null;index" json:"conversation_key"`

	SenderID     uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	SenderName   string    `gorm:"size:255;not null" json:"sender_name"`
	ReceiverID   uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	ReceiverName string    `gorm:"size:255;not null" json:"receiver_name"`

	Content string `gorm:"type:text;not null" json:"content"`
	Read    bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
