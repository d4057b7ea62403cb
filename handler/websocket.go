package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"filmgraph/model"
	"filmgraph/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要检查 Origin
		return true
	},
}

// Client 一个订阅事件流的 WebSocket 连接
type Client struct {
	ID     uuid.UUID
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub

	mu     sync.Mutex
	closed bool
}

// Hub 事件流推送中心：新事件写入后实时推给作者的在线连接。
// 多实例部署时通过 Redis Pub/Sub 跨实例广播。
type Hub struct {
	// 在线用户 map[userID]map[clientID]*Client（支持多设备）
	Clients map[int64]map[uuid.UUID]*Client
	mu      sync.RWMutex

	// 每个用户的最大连接数
	MaxConnectionsPerUser int

	rdb *redis.Client

	// 实例唯一 ID，用于跨实例广播去重
	podID string

	stopPubSub chan struct{}
}

// Redis Pub/Sub channel 名称
const redisFeedChannel = "feed:events"

// feedBroadcast 跨实例广播的消息格式
type feedBroadcast struct {
	UserID  int64           `json:"user_id"`
	PodID   string          `json:"pod_id"` // 发送方实例 ID，用于去重
	Payload json.RawMessage `json:"payload"`
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		Clients:               make(map[int64]map[uuid.UUID]*Client),
		MaxConnectionsPerUser: 8,
		rdb:                   rdb,
		podID:                 uuid.New().String(),
		stopPubSub:            make(chan struct{}),
	}
}

// PublishEvent 实现 service.EventPublisher：
// 本实例直推 + Redis 广播给其他实例。事件已落库，这里失败只记日志。
func (h *Hub) PublishEvent(event *model.Event) {
	payload, err := json.Marshal(gin.H{"type": "event", "data": event})
	if err != nil {
		log.Printf("[ERROR] Failed to marshal feed event %d: %v", event.EventID, err)
		return
	}

	h.sendToUser(event.UserID, payload)

	if h.rdb == nil {
		return
	}
	broadcast, _ := json.Marshal(feedBroadcast{
		UserID:  event.UserID,
		PodID:   h.podID,
		Payload: payload,
	})
	if err := h.rdb.Publish(context.Background(), redisFeedChannel, broadcast).Err(); err != nil {
		log.Printf("[ERROR] Failed to publish feed event %d: %v", event.EventID, err)
	}
}

// StartPubSub 订阅其他实例广播的事件
func (h *Hub) StartPubSub() {
	if h.rdb == nil {
		return
	}
	pubsub := h.rdb.Subscribe(context.Background(), redisFeedChannel)

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.handleBroadcast([]byte(msg.Payload))
			case <-h.stopPubSub:
				return
			}
		}
	}()
}

// StopPubSub 停止订阅
func (h *Hub) StopPubSub() {
	close(h.stopPubSub)
}

func (h *Hub) handleBroadcast(data []byte) {
	var msg feedBroadcast
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("[ERROR] Failed to unmarshal feed broadcast: %v", err)
		return
	}
	// 自己发出的广播已经直推过，跳过
	if msg.PodID == h.podID {
		return
	}
	h.sendToUser(msg.UserID, msg.Payload)
}

// Register 注册客户端（超过连接上限时拒绝）
func (h *Hub) Register(client *Client) bool {
	h.mu.Lock()

	if h.Clients[client.UserID] == nil {
		h.Clients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	if len(h.Clients[client.UserID]) >= h.MaxConnectionsPerUser {
		h.mu.Unlock()
		log.Printf("[WARN] User %d exceeds max feed connections (%d), rejecting client %s",
			client.UserID, h.MaxConnectionsPerUser, client.ID)
		return false
	}
	h.Clients[client.UserID][client.ID] = client
	h.mu.Unlock()
	return true
}

// Unregister 注销客户端并关闭发送通道
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if clients, ok := h.Clients[client.UserID]; ok {
		if _, ok := clients[client.ID]; ok {
			delete(clients, client.ID)
			if len(clients) == 0 {
				delete(h.Clients, client.UserID)
			}
		}
	}
	h.mu.Unlock()

	client.mu.Lock()
	if !client.closed {
		client.closed = true
		close(client.Send)
	}
	client.mu.Unlock()
}

func (h *Hub) sendToUser(userID int64, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.Clients[userID] {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.Send <- payload:
			default:
				// 发送缓冲满，丢掉这条实时推送（事件本身已落库）
				log.Printf("[WARN] Feed send buffer full for user %d, dropping event", userID)
			}
		}
		client.mu.Unlock()
	}
}

// HandleFeedWS 建立事件流 WebSocket 连接：GET /ws/feed?user_id=
func HandleFeedWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
		if err != nil || userID <= 0 {
			utils.BadRequest(c, "invalid user_id")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ERROR] Failed to upgrade feed connection: %v", err)
			return
		}

		client := &Client{
			ID:     uuid.New(),
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 64),
			Hub:    hub,
		}

		if !hub.Register(client) {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too many connections"))
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}

// readPump 事件流是单向推送，读循环只处理关闭和心跳
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
