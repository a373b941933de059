package repository

import (
	"gorm.io/gorm/clause"

	"cookoff_web/internal/models"
	"cookoff_web/internal/storage"
)

type GameRepository interface {
	Create(game *models.Game) error
	FindByID(id uint) (*models.Game, error)
	// FindByIDForUpdate 在交易內鎖定遊戲列（SELECT ... FOR UPDATE）
	// 人數檢查、回合推進等複合操作靠它對同一場遊戲串行化
	FindByIDForUpdate(id uint) (*models.Game, error)
	Update(game *models.Game) error
	Delete(id uint) error
}

type gameRepository struct {
	db *storage.PostgresDB
}

func NewGameRepository(db *storage.PostgresDB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(game *models.Game) error {
	return r.db.Create(game).Error
}

func (r *gameRepository) FindByID(id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.First(&game, id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindByIDForUpdate(id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&game, id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Update(game *models.Game) error {
	return r.db.Save(game).Error
}

func (r *gameRepository) Delete(id uint) error {
	return r.db.Delete(&models.Game{}, id).Error
}
