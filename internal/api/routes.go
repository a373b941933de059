package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cookoff_web/internal/api/handlers"
	"cookoff_web/internal/middleware"
	"cookoff_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, baseURL string) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	gameHandler := handlers.NewGameHandler(services.Game, baseURL)
	roundHandler := handlers.NewRoundHandler(services.Round)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket, services.Game)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 遊戲房間相關
		rooms := authorized.Group("/rooms")
		{
			// 房間生命週期
			rooms.POST("", gameHandler.CreateGame)                  // 建立房間
			rooms.GET("/:id", gameHandler.GetLobby)                 // 大廳輪詢
			rooms.POST("/:id/join", gameHandler.JoinGame)           // 加入房間
			rooms.POST("/:id/leave", gameHandler.LeaveGame)         // 離開房間
			rooms.POST("/:id/kick/:userId", gameHandler.KickPlayer) // 房主踢人
			rooms.GET("/:id/qr", gameHandler.ShareQR)               // 分享房間的 QR code

			// 回合狀態機
			rooms.POST("/:id/start", roundHandler.StartGame)                           // 房主開局
			rooms.GET("/:id/rounds/:roundId", roundHandler.GetRound)                   // 回合資料
			rooms.POST("/:id/rounds/:roundId/responses", roundHandler.SubmitAnswer)    // 提交答案
			rooms.GET("/:id/rounds/:roundId/responses", roundHandler.ListResponses)    // 投票選項
			rooms.GET("/:id/rounds/:roundId/submit-status", roundHandler.SubmitStatus) // 交卷進度輪詢
			rooms.POST("/:id/rounds/:roundId/votes", roundHandler.CastVote)            // 投票
			rooms.GET("/:id/rounds/:roundId/vote-status", roundHandler.VoteStatus)     // 投票進度輪詢
			rooms.POST("/:id/rounds/:roundId/advance", roundHandler.AdvanceRound)      // 推進回合
			rooms.GET("/:id/results", roundHandler.RoundResults)                       // 回合結算排行
			rooms.GET("/:id/winner", roundHandler.Winner)                              // 最終贏家

			// WebSocket 連接（房間即時通知）
			rooms.GET("/:id/ws", wsHandler.HandleWebSocket)
		}
	}
}
