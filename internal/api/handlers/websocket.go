package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cookoff_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	wsManager   *service.WebSocketManager
	gameService *service.GameService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager, gameService *service.GameService) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		gameService: gameService,
	}
}

// HandleWebSocket 處理 WebSocket 連接請求
// 只有遊戲成員可以連上房間頻道，接收加入/離開/階段變化等即時通知
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := currentUserID(c)

	// 升級前先驗證成員資格
	if _, err := h.gameService.GetLobby(gameID, userID); err != nil {
		respondError(c, err)
		return
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	// 阻塞直到連接關閉，清理由 manager 負責
	h.wsManager.HandleConnection(conn, gameID, userID)
}
