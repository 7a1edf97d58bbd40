package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/sahilm27/skill_swap/configs"
	"github.com/sahilm27/skill_swap/database"
	"github.com/sahilm27/skill_swap/models"
	"github.com/sahilm27/skill_swap/services"
	"github.com/sahilm27/skill_swap/websocket"
)

func chatErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrConversationNotFound), errors.Is(err, services.ErrRecipientNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotInConversation):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

func StartConversation(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	type Request struct {
		RecipientID string `json:"recipient_id" validate:"required,uuid"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	recipientID, _ := uuid.Parse(req.RecipientID)
	conversation, err := services.StartChat(database.DB, user, recipientID)
	if err != nil {
		return c.Status(chatErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(conversation)
}

func GetUserConversations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	conversations, err := services.ConversationsForUser(database.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}

	return c.JSON(conversations)
}

func GetConversationMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))

	messages, err := services.ConversationMessages(database.DB, userID, c.Params("conversationKey"), page, pageSize)
	if err != nil {
		return c.Status(chatErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(messages)
}

func SendMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	type Request struct {
		Content string `json:"content" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var sender models.User
	if err := database.DB.First(&sender, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	message, err := services.SendMessage(database.DB, sender, c.Params("conversationKey"), req.Content)
	if err != nil {
		return c.Status(chatErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	websocket.NotifyUsers(websocket.Event{Type: websocket.EventMessageNew, Payload: message}, message.ReceiverID)

	return c.Status(fiber.StatusCreated).JSON(message)
}

func MarkConversationRead(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	marked, err := services.MarkConversationRead(database.DB, userID, c.Params("conversationKey"))
	if err != nil {
		return c.Status(chatErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"marked_read": marked})
}

// ServeWs authenticates a websocket connection, registers it with the hub
// and accepts chat payloads over the socket so clients can send without a
// separate HTTP round trip.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "User not found"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	type chatPayload struct {
		ConversationKey string `json:"conversation_key"`
		Content         string `json:"content"`
	}
	for {
		var msg chatPayload
		if err := c.ReadJSON(&msg); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		message, err := services.SendMessage(database.DB, user, msg.ConversationKey, msg.Content)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": err.Error()})
			continue
		}

		websocket.NotifyUsers(websocket.Event{Type: websocket.EventMessageNew, Payload: message}, message.ReceiverID)
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
