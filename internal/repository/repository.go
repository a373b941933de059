package repository

import (
	"gorm.io/gorm"

	"cookoff_web/internal/storage"
)

type Repositories struct {
	User       UserRepository
	Game       GameRepository
	Membership MembershipRepository
	Round      RoundRepository
	Response   ResponseRepository
	Vote       VoteRepository
	Ingredient IngredientRepository

	db *storage.PostgresDB
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Game:       NewGameRepository(db),
		Membership: NewMembershipRepository(db),
		Round:      NewRoundRepository(db),
		Response:   NewResponseRepository(db),
		Vote:       NewVoteRepository(db),
		Ingredient: NewIngredientRepository(db),
		db:         db,
	}
}

// Transaction 在單一資料庫交易中執行 fn
// fn 收到的 Repositories 全部綁定在同一個交易上，任一步驟出錯即整體回滾
func (r *Repositories) Transaction(fn func(tx *Repositories) error) error {
	if r.db == nil {
		// 測試時以替身 repository 組裝，沒有真實資料庫可開交易
		return fn(r)
	}
	return r.db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(&storage.PostgresDB{DB: tx}))
	})
}
