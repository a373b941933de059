package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Message 是房間內推播的消息格式
// 階段門檻仍由輪詢端點推導，這裡只負責即時通知與聊天
type Message struct {
	Type    string `json:"type"` // chat 或 system
	Content string `json:"content"`
	UserID  uint   `json:"user_id,omitempty"`
	GameID  uint   `json:"game_id"`
}

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn
	UserID   uint
	GameID   uint
	SendChan chan *Message // 消息發送通道，用於異步傳送消息
}

// WebSocketManager 管理所有的 WebSocket 連接和消息傳遞
type WebSocketManager struct {
	clients    map[uint]map[*Client]bool // 兩層 map: gameID -> client -> bool
	clientsMux sync.RWMutex              // 用於保護 clients map 的讀寫鎖
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[uint]map[*Client]bool),
	}
}

// HandleConnection 處理新的 WebSocket 連接請求，阻塞直到連接關閉
func (m *WebSocketManager) HandleConnection(conn *websocket.Conn, gameID, userID uint) {
	client := &Client{
		Conn:     conn,
		UserID:   userID,
		GameID:   gameID,
		SendChan: make(chan *Message, 256),
	}

	m.addClient(client)

	// 斷線時只移除註冊並關閉連接
	// SendChan 不關閉，晚到的廣播頂多寫進緩衝被回收，不會炸掉整個程序
	defer func() {
		m.removeClient(client)
		conn.Close()
	}()

	go m.writePump(client)
	m.readPump(client)
}

// readPump 持續監聽並處理從客戶端接收的消息
func (m *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096)
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("message parse error: %v", err)
			continue
		}

		// 客戶端送來的一律當成聊天消息，身分以連接為準
		msg.Type = "chat"
		msg.UserID = client.UserID
		msg.GameID = client.GameID

		m.BroadcastToGame(client.GameID, &msg)
	}
}

// writePump 處理向客戶端發送消息的邏輯
func (m *WebSocketManager) writePump(client *Client) {
	// 心跳計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			messageBytes, err := json.Marshal(message)
			if err != nil {
				log.Printf("message encoding error: %v", err)
				continue
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastToGame 向同一場遊戲的所有客戶端廣播消息
// 整段派發都持有讀鎖，避免和斷線清理同時動到 map
func (m *WebSocketManager) BroadcastToGame(gameID uint, message *Message) {
	var stale []*Client

	m.clientsMux.RLock()
	for client := range m.clients[gameID] {
		select {
		case client.SendChan <- message:
			// 消息成功加入發送隊列
		default:
			// 客戶端消息隊列已滿，稍後關閉連接
			stale = append(stale, client)
		}
	}
	m.clientsMux.RUnlock()

	// removeClient 要取寫鎖，必須等讀鎖放掉才處理
	for _, client := range stale {
		m.removeClient(client)
		client.Conn.Close()
	}
}

// BroadcastSystemMessage 發送系統消息到指定遊戲
func (m *WebSocketManager) BroadcastSystemMessage(gameID uint, content string) {
	msg := &Message{
		Type:    "system",
		Content: content,
		GameID:  gameID,
	}
	m.BroadcastToGame(gameID, msg)
}

// addClient 安全地添加新的客戶端連接
func (m *WebSocketManager) addClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if m.clients[client.GameID] == nil {
		m.clients[client.GameID] = make(map[*Client]bool)
	}
	m.clients[client.GameID][client] = true
}

// removeClient 安全地移除客戶端連接
func (m *WebSocketManager) removeClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if clients, ok := m.clients[client.GameID]; ok {
		delete(clients, client)
		// 如果遊戲沒有連接了，刪除該項
		if len(clients) == 0 {
			delete(m.clients, client.GameID)
		}
	}
}

// GetGameClients 獲取指定遊戲目前的在線連接數
func (m *WebSocketManager) GetGameClients(gameID uint) int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	return len(m.clients[gameID])
}
