package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	config "github.com/sahilm27/skill_swap/configs"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// Event is what connected clients receive: a type tag plus the changed
// entity (message, booking) as payload.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventMessageNew     = "message.new"
	EventBookingNew     = "booking.new"
	EventBookingUpdated = "booking.updated"
)

type envelope struct {
	To    []uuid.UUID `json:"to"`
	Event Event       `json:"event"`
}

const redisChannel = "skillswap:events"

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var deliver = make(chan envelope, 256)

var rdb *redis.Client

// InitRedis wires the optional pub/sub bridge so events reach clients
// connected to other instances. Without REDIS_ADDR the hub delivers
// locally only.
func InitRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, websocket events stay in-process")
		return
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
	})
	log.Printf("Redis event bridge enabled (addr: %s)", addr)

	go func() {
		sub := rdb.Subscribe(context.Background(), redisChannel)
		for msg := range sub.Channel() {
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("Dropping malformed event from redis: %v", err)
				continue
			}
			deliver <- env
		}
	}()
}

// NotifyUsers pushes an event to the given users. With the Redis bridge
// enabled the event goes through pub/sub so every instance delivers it to
// its own connections; otherwise it is delivered locally.
func NotifyUsers(event Event, userIDs ...uuid.UUID) {
	env := envelope{To: userIDs, Event: event}

	if rdb != nil {
		payload, err := json.Marshal(env)
		if err != nil {
			log.Printf("Error marshaling event: %v", err)
			return
		}
		if err := rdb.Publish(context.Background(), redisChannel, payload).Err(); err != nil {
			log.Printf("Error publishing event to redis: %v", err)
		}
		return
	}

	deliver <- env
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case env := <-deliver:
			for _, userID := range env.To {
				clientsMu.RLock()
				conn, ok := clients[userID]
				clientsMu.RUnlock()
				if !ok {
					continue
				}
				if err := conn.WriteJSON(env.Event); err != nil {
					log.Printf("Error sending event to client %s: %v", userID, err)
					conn.Close()
					clientsMu.Lock()
					delete(clients, userID)
					clientsMu.Unlock()
				}
			}
		}
	}
}
