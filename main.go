package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"cookoff_web/internal/api"
	"cookoff_web/internal/models"
	"cookoff_web/internal/repository"
	"cookoff_web/internal/service"
	"cookoff_web/internal/storage"
	"cookoff_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 根據定義的模型自動創建或更新數據庫表結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Game{},
		&models.Membership{},
		&models.Round{},
		&models.Response{},
		&models.Vote{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos)

	// 食材目錄為空時寫入預設食材
	if err := services.Ingredient.Seed(); err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, cfg.Server.BaseURL)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
