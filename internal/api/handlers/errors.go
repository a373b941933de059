package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cookoff_web/internal/service"
)

// respondError 將服務層的預期錯誤轉成對應的 HTTP 狀態
// 不在清單內的錯誤視為資料庫等非預期故障，一律回 500 且不透漏細節
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrRoundNotFound),
		errors.Is(err, service.ErrResponseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrDuplicateAnswer),
		errors.Is(err, service.ErrDuplicateSubmission),
		errors.Is(err, service.ErrSelfVote),
		errors.Is(err, service.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidAnswer),
		errors.Is(err, service.ErrNoPlayers),
		errors.Is(err, service.ErrInsufficientCatalog):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "伺服器發生錯誤"})
	}
}

// currentUserID 取出 AuthMiddleware 放進上下文的用戶 ID
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}
