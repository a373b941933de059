package models

import (
	"gorm.io/gorm"
)

// Ingredient 表示食材目錄中的一項，開新回合時從中隨機抽出三樣
type Ingredient struct {
	gorm.Model
	Name     string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Category string `gorm:"size:64" json:"category"`
}
