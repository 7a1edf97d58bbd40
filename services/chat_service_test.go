package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sahilm27/skill_swap/models"
)

func TestConversationKey_Symmetric(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	if ConversationKey(a, b) != ConversationKey(b, a) {
		t.Fatalf("key(a,b) = %q, key(b,a) = %q", ConversationKey(a, b), ConversationKey(b, a))
	}
	if ConversationKey(a, b) == ConversationKey(a, uuid.New()) {
		t.Fatalf("different pairs produced the same key")
	}
}

func TestStartChat_SeedsGreetingOnce(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	conversation, err := StartChat(db, alice, bob.ID)
	if err != nil {
		t.Fatalf("start chat: %v", err)
	}
	if conversation.Key != ConversationKey(alice.ID, bob.ID) {
		t.Errorf("key = %q, want derived key", conversation.Key)
	}
	if !conversation.HasParticipant(alice.ID) || !conversation.HasParticipant(bob.ID) {
		t.Errorf("participants not recorded: %+v", conversation)
	}
	if conversation.LastMessage != "Hi! I'd like to chat." {
		t.Errorf("last message = %q, want greeting", conversation.LastMessage)
	}

	var messages []models.Message
	if err := db.Where("conversation_key = ?", conversation.Key).Find(&messages).Error; err != nil {
		t.Fatalf("load messages: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("message count = %d, want 1 greeting", len(messages))
	}
	if messages[0].SenderID != alice.ID || messages[0].ReceiverID != bob.ID {
		t.Errorf("greeting sender/receiver wrong: %+v", messages[0])
	}

	// Opening the chat again from either side returns the same thread
	// without reseeding.
	again, err := StartChat(db, bob, alice.ID)
	if err != nil {
		t.Fatalf("reopen chat: %v", err)
	}
	if again.ID != conversation.ID {
		t.Errorf("reopen created a new conversation")
	}
	var count int64
	db.Model(&models.Message{}).Where("conversation_key = ?", conversation.Key).Count(&count)
	if count != 1 {
		t.Errorf("message count after reopen = %d, want 1", count)
	}
}

func TestStartChat_Rejections(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "Alice", "alice@example.com")

	if _, err := StartChat(db, alice, alice.ID); !errors.Is(err, ErrSelfChat) {
		t.Errorf("self chat: err = %v, want ErrSelfChat", err)
	}
	if _, err := StartChat(db, alice, uuid.New()); !errors.Is(err, ErrRecipientNotFound) {
		t.Errorf("unknown recipient: err = %v, want ErrRecipientNotFound", err)
	}
}

func TestSendMessage_UpdatesSummary(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	conversation, err := StartChat(db, alice, bob.ID)
	if err != nil {
		t.Fatalf("start chat: %v", err)
	}

	if _, err := SendMessage(db, alice, conversation.Key, "Are you free Tuesday?"); err != nil {
		t.Fatalf("first message: %v", err)
	}
	message, err := SendMessage(db, bob, conversation.Key, "Tuesday works!")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if message.ReceiverID != alice.ID {
		t.Errorf("reply receiver = %v, want alice", message.ReceiverID)
	}

	var reloaded models.Conversation
	if err := db.First(&reloaded, "id = ?", conversation.ID).Error; err != nil {
		t.Fatalf("reload conversation: %v", err)
	}
	if reloaded.LastMessage != "Tuesday works!" {
		t.Errorf("last message = %q, want latest reply", reloaded.LastMessage)
	}
	if reloaded.LastSenderID != bob.ID {
		t.Errorf("last sender = %v, want bob", reloaded.LastSenderID)
	}
	// Bob has greeting + alice's message unread, alice has bob's reply.
	if got := reloaded.UnreadFor(bob.ID); got != 2 {
		t.Errorf("bob unread = %d, want 2", got)
	}
	if got := reloaded.UnreadFor(alice.ID); got != 1 {
		t.Errorf("alice unread = %d, want 1", got)
	}

	outsider := seedUser(t, db, "Mallory", "mallory@example.com")
	if _, err := SendMessage(db, outsider, conversation.Key, "hi"); !errors.Is(err, ErrNotInConversation) {
		t.Errorf("outsider send: err = %v, want ErrNotInConversation", err)
	}
	if _, err := SendMessage(db, alice, "no_such_key", "hi"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("bad key: err = %v, want ErrConversationNotFound", err)
	}
}

func TestConversationMessages_OrderAndAccess(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	conversation, err := StartChat(db, alice, bob.ID)
	if err != nil {
		t.Fatalf("start chat: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := SendMessage(db, alice, conversation.Key, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	messages, err := ConversationMessages(db, bob.ID, conversation.Key, 1, 50)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 4 {
		t.Fatalf("message count = %d, want 4", len(messages))
	}
	if messages[0].Content != "Hi! I'd like to chat." {
		t.Errorf("first message = %q, want greeting first", messages[0].Content)
	}
	if messages[3].Content != "message 2" {
		t.Errorf("last message = %q, want newest last", messages[3].Content)
	}

	outsider := seedUser(t, db, "Mallory", "mallory@example.com")
	if _, err := ConversationMessages(db, outsider.ID, conversation.Key, 1, 50); !errors.Is(err, ErrNotInConversation) {
		t.Errorf("outsider read: err = %v, want ErrNotInConversation", err)
	}
}

func TestMarkConversationRead(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	conversation, err := StartChat(db, alice, bob.ID)
	if err != nil {
		t.Fatalf("start chat: %v", err)
	}
	if _, err := SendMessage(db, alice, conversation.Key, "ping"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := SendMessage(db, bob, conversation.Key, "pong"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	marked, err := MarkConversationRead(db, bob.ID, conversation.Key)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if marked != 2 {
		t.Errorf("marked = %d, want 2 (greeting + ping)", marked)
	}

	var unreadToBob int64
	db.Model(&models.Message{}).
		Where("conversation_key = ? AND receiver_id = ? AND read = ?", conversation.Key, bob.ID, false).
		Count(&unreadToBob)
	if unreadToBob != 0 {
		t.Errorf("bob still has %d unread messages", unreadToBob)
	}

	// Alice's incoming message stays unread until she reads it herself.
	var unreadToAlice int64
	db.Model(&models.Message{}).
		Where("conversation_key = ? AND receiver_id = ? AND read = ?", conversation.Key, alice.ID, false).
		Count(&unreadToAlice)
	if unreadToAlice != 1 {
		t.Errorf("alice unread messages = %d, want 1", unreadToAlice)
	}

	var reloaded models.Conversation
	db.First(&reloaded, "id = ?", conversation.ID)
	if got := reloaded.UnreadFor(bob.ID); got != 0 {
		t.Errorf("bob unread counter = %d, want 0", got)
	}
	if got := reloaded.UnreadFor(alice.ID); got != 1 {
		t.Errorf("alice unread counter = %d, want 1", got)
	}
}
