package models

import (
	"strings"

	"gorm.io/gorm"
)

// RoundPhase 定義回合所處階段的類型
type RoundPhase string

const (
	PhaseSubmit  RoundPhase = "submit"  // 收集答案中
	PhaseVote    RoundPhase = "vote"    // 投票中
	PhaseResults RoundPhase = "results" // 結算中
)

// Round 表示遊戲中的一個回合，建立時固定抽出三樣食材
// (game_id, number) 的唯一索引同時防止併發下重複建立下一回合
type Round struct {
	gorm.Model
	GameID      uint       `gorm:"index;not null;uniqueIndex:idx_rounds_game_number" json:"game_id"`
	Number      int        `gorm:"not null;uniqueIndex:idx_rounds_game_number" json:"number"`
	Ingredients string     `gorm:"size:256;not null" json:"ingredients"` // 以逗號分隔的食材名稱，順序固定
	Phase       RoundPhase `gorm:"size:32;not null;default:submit" json:"phase"`
}

// IngredientList 將食材字串還原為有序列表
func (r *Round) IngredientList() []string {
	if r.Ingredients == "" {
		return nil
	}
	parts := strings.Split(r.Ingredients, ", ")
	return parts
}

// Response 表示玩家在某回合提交的答案
// NormText 只用於重複偵測，Text 保留玩家輸入的原始大小寫
type Response struct {
	gorm.Model
	RoundID  uint   `gorm:"index;not null;uniqueIndex:idx_responses_round_norm;uniqueIndex:idx_responses_round_user" json:"round_id"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_responses_round_user" json:"user_id"`
	Text     string `gorm:"size:256;not null" json:"text"`
	NormText string `gorm:"size:256;not null;uniqueIndex:idx_responses_round_norm" json:"-"`
	Votes    int    `gorm:"not null;default:0" json:"votes"`
}

// Vote 記錄某回合中一名玩家投給哪個答案
// 每個 (round, voter) 組合只能投一票
type Vote struct {
	gorm.Model
	RoundID    uint `gorm:"index;not null;uniqueIndex:idx_votes_round_voter" json:"round_id"`
	VoterID    uint `gorm:"not null;uniqueIndex:idx_votes_round_voter" json:"voter_id"`
	ResponseID uint `gorm:"index;not null" json:"response_id"`
}
