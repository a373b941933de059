package models

import (
	"gorm.io/gorm"
)

// Game 表示一場料理對決，由房主建立，最多容納 MaxPlayers 名玩家
type Game struct {
	gorm.Model
	HostID   uint `gorm:"not null" json:"host_id"`             // 房主的用戶 ID
	RoundNum int  `gorm:"not null;default:1" json:"round_num"` // 目前進行到第幾回合，從 1 開始
	Active   bool `gorm:"not null;default:true" json:"active"` // 遊戲是否仍在進行
}

// Membership 表示玩家在某場遊戲中的參與記錄，帶有累計分數
// 每個 (game, user) 組合只能有一筆記錄
type Membership struct {
	gorm.Model
	GameID uint `gorm:"index;not null;uniqueIndex:idx_memberships_game_user" json:"game_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_memberships_game_user" json:"user_id"`
	Score  int  `gorm:"not null;default:0" json:"score"`
	User   User `json:"user"` // 玩家資料，查詢成員列表時以 Preload 帶出
}

const (
	// MaxPlayers 每場遊戲的人數上限
	MaxPlayers = 4
	// RoundCap 每場遊戲的回合數上限
	RoundCap = 3
)
