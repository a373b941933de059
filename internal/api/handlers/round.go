package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cookoff_web/internal/service"
)

// RoundHandler 處理回合狀態機相關的請求
type RoundHandler struct {
	roundService *service.RoundService
}

// NewRoundHandler 創建一個新的 RoundHandler 實例
func NewRoundHandler(roundService *service.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

// StartGame 處理房主開局的請求，建立第一回合
func (h *RoundHandler) StartGame(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	round, err := h.roundService.StartGame(gameID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, round)
}

// GetRound 處理取得回合資料的請求，遊戲畫面顯示食材用
func (h *RoundHandler) GetRound(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roundID, ok := parseID(c, "roundId")
	if !ok {
		return
	}

	round, err := h.roundService.GetRound(gameID, roundID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"round":       round,
		"ingredients": round.IngredientList(),
	})
}

// SubmitAnswer 處理提交答案的請求
func (h *RoundHandler) SubmitAnswer(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roundID, ok := parseID(c, "roundId")
	if !ok {
		return
	}

	var input struct {
		Answer string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.roundService.SubmitAnswer(gameID, roundID, currentUserID(c), input.Answer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// SubmitStatus 輪詢交卷進度，全員交卷後客戶端轉往投票畫面
func (h *RoundHandler) SubmitStatus(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roundID, ok := parseID(c, "roundId")
	if !ok {
		return
	}

	status, err := h.roundService.SubmitStatus(gameID, roundID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// ListResponses 回傳投票選項
func (h *RoundHandler) ListResponses(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roundID, ok := parseID(c, "roundId")
	if !ok {
		return
	}

	responses, err := h.roundService.ListResponses(gameID, roundID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

// CastVote 處理投票的請求
func (h *RoundHandler) CastVote(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roundID, ok := parseID(c, "roundId")
	if !ok {
		return
	}

	var input struct {
		ResponseID uint `json:"response_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.roundService.CastVote(gameID, roundID, currentUserID(c), input.ResponseID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "投票成功"})
}

// VoteStatus 輪詢投票進度，全員投完後客戶端轉往結算或贏家畫面
func (h *RoundHandler) VoteStatus(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roundID, ok := parseID(c, "roundId")
	if !ok {
		return
	}

	status, err := h.roundService.VoteStatus(gameID, roundID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// AdvanceRound 處理推進到下一回合的請求
func (h *RoundHandler) AdvanceRound(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roundID, ok := parseID(c, "roundId")
	if !ok {
		return
	}

	next, winner, err := h.roundService.AdvanceRound(gameID, roundID)
	if err != nil {
		respondError(c, err)
		return
	}

	if winner {
		c.JSON(http.StatusOK, gin.H{"winner": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"winner": false, "round": next})
}

// RoundResults 回傳目前排行榜
func (h *RoundHandler) RoundResults(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	standings, roundNum, err := h.roundService.RoundResults(gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"round_num": roundNum,
		"standings": standings,
	})
}

// Winner 回傳最終贏家與完整排行榜
func (h *RoundHandler) Winner(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	winner, standings, err := h.roundService.Winner(gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"winner":    winner,
		"standings": standings,
	})
}
