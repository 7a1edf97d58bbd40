package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm27/skill_swap/models"
	"gorm.io/gorm"
)

const greetingMessage = "Hi! I'd like to chat."

var (
	ErrSelfChat             = errors.New("you cannot message yourself")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotInConversation    = errors.New("you are not part of this conversation")
)

// ConversationKey derives the thread identifier for two users: both ids
// sorted and joined, so key(a, b) == key(b, a).
func ConversationKey(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// StartChat opens (or returns) the conversation between the user and a
// recipient. A brand-new conversation is seeded with a greeting message so
// the thread shows up on both sides immediately.
func StartChat(db *gorm.DB, user models.User, recipientID uuid.UUID) (*models.Conversation, error) {
	if user.ID == recipientID {
		return nil, ErrSelfChat
	}

	var recipient models.User
	if err := db.First(&recipient, "id = ?", recipientID).Error; err != nil {
		return nil, ErrRecipientNotFound
	}

	key := ConversationKey(user.ID, recipient.ID)

	var conversation models.Conversation
	err := db.First(&conversation, "key = ?", key).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	one, two := user, recipient
	if two.ID.String() < one.ID.String() {
		one, two = two, one
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		conversation = models.Conversation{
			Key:                key,
			ParticipantOneID:   one.ID,
			ParticipantOneName: one.FullName,
			ParticipantTwoID:   two.ID,
			ParticipantTwoName: two.FullName,
			LastMessage:        greetingMessage,
			LastSenderID:       user.ID,
		}
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}

		greeting := models.Message{
			ConversationKey: key,
			SenderID:        user.ID,
			SenderName:      user.FullName,
			ReceiverID:      recipient.ID,
			ReceiverName:    recipient.FullName,
			Content:         greetingMessage,
		}
		if err := tx.Create(&greeting).Error; err != nil {
			return err
		}

		unreadField := unreadFieldFor(&conversation, recipient.ID)
		return tx.Model(&models.Conversation{}).Where("id = ?", conversation.ID).
			Update(unreadField, gorm.Expr(unreadField+" + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}

	return &conversation, nil
}

// SendMessage appends a message to an existing conversation and updates
// its summary row in the same transaction.
func SendMessage(db *gorm.DB, sender models.User, key, content string) (*models.Message, error) {
	var conversation models.Conversation
	if err := db.First(&conversation, "key = ?", key).Error; err != nil {
		return nil, ErrConversationNotFound
	}
	if !conversation.HasParticipant(sender.ID) {
		return nil, ErrNotInConversation
	}

	receiverID, receiverName := conversation.OtherParticipant(sender.ID)

	message := models.Message{
		ConversationKey: key,
		SenderID:        sender.ID,
		SenderName:      sender.FullName,
		ReceiverID:      receiverID,
		ReceiverName:    receiverName,
		Content:         content,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		unreadField := unreadFieldFor(&conversation, receiverID)
		return tx.Model(&models.Conversation{}).Where("id = ?", conversation.ID).
			Updates(map[string]interface{}{
				"last_message":   content,
				"last_sender_id": sender.ID,
				unreadField:      gorm.Expr(unreadField+" + ?", 1),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// ConversationsForUser lists the user's conversation summaries, most
// recent activity first. This replaces scanning the whole messages table.
func ConversationsForUser(db *gorm.DB, userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := db.Where("participant_one_id = ? OR participant_two_id = ?", userID, userID).
		Order("updated_at desc").
		Find(&conversations).Error
	return conversations, err
}

// ConversationMessages returns a page of a conversation's messages in
// creation order. Only participants may read the thread.
func ConversationMessages(db *gorm.DB, userID uuid.UUID, key string, page, pageSize int) ([]models.Message, error) {
	var conversation models.Conversation
	if err := db.First(&conversation, "key = ?", key).Error; err != nil {
		return nil, ErrConversationNotFound
	}
	if !conversation.HasParticipant(userID) {
		return nil, ErrNotInConversation
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var messages []models.Message
	err := db.Where("conversation_key = ?", key).
		Order("created_at asc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&messages).Error
	return messages, err
}

// MarkConversationRead flips read on the caller's unread received messages
// and zeroes their unread counter. The sender's own flags are untouched.
func MarkConversationRead(db *gorm.DB, userID uuid.UUID, key string) (int64, error) {
	var conversation models.Conversation
	if err := db.First(&conversation, "key = ?", key).Error; err != nil {
		return 0, ErrConversationNotFound
	}
	if !conversation.HasParticipant(userID) {
		return 0, ErrNotInConversation
	}

	var marked int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Message{}).
			Where("conversation_key = ? AND receiver_id = ? AND read = ?", key, userID, false).
			Update("read", true)
		if res.Error != nil {
			return res.Error
		}
		marked = res.RowsAffected

		unreadField := unreadFieldFor(&conversation, userID)
		return tx.Model(&models.Conversation{}).Where("id = ?", conversation.ID).
			Update(unreadField, 0).Error
	})
	return marked, err
}

func unreadFieldFor(c *models.Conversation, userID uuid.UUID) string {
	if c.ParticipantOneID == userID {
		return "unread_one"
	}
	return "unread_two"
}
