package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"cookoff_web/internal/service"
)

// GameHandler 處理遊戲房間生命週期相關的請求
type GameHandler struct {
	gameService *service.GameService
	baseURL     string
}

// NewGameHandler 創建一個新的 GameHandler 實例
func NewGameHandler(gameService *service.GameService, baseURL string) *GameHandler {
	return &GameHandler{gameService: gameService, baseURL: baseURL}
}

// parseID 解析路徑中的數字參數
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 " + name})
		return 0, false
	}
	return uint(id), true
}

// CreateGame 處理建立房間的請求，呼叫者成為房主
func (h *GameHandler) CreateGame(c *gin.Context) {
	game, err := h.gameService.CreateGame(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

// GetLobby 處理大廳輪詢：成員名單與是否已開局
func (h *GameHandler) GetLobby(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	lobby, err := h.gameService.GetLobby(gameID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lobby)
}

// JoinGame 處理以房間代碼加入遊戲的請求
func (h *GameHandler) JoinGame(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.gameService.JoinGame(gameID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功加入遊戲"})
}

// LeaveGame 處理離開遊戲的請求，房主離開會解散整場遊戲
func (h *GameHandler) LeaveGame(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.gameService.LeaveGame(gameID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成功離開遊戲"})
}

// KickPlayer 處理房主踢人的請求
func (h *GameHandler) KickPlayer(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := h.gameService.KickPlayer(gameID, currentUserID(c), targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已將玩家移出遊戲"})
}

// ShareQR 產生房間加入連結的 QR code，大廳畫面掃碼入場用
func (h *GameHandler) ShareQR(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	// 先確認呼叫者在這場遊戲裡
	if _, err := h.gameService.GetLobby(gameID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil || size < 64 || size > 1024 {
		size = 256
	}

	base := h.baseURL
	if base == "" {
		base = "http://" + c.Request.Host
	}
	joinURL := fmt.Sprintf("%s/api/rooms/%d/join", base, gameID)

	png, err := qrcode.Encode(joinURL, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "產生 QR code 失敗"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
