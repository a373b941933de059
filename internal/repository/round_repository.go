package repository

import (
	"cookoff_web/internal/models"
	"cookoff_web/internal/storage"
)

type RoundRepository interface {
	Create(round *models.Round) error
	FindByID(id uint) (*models.Round, error)
	// FirstByGame 回傳該遊戲最早的回合，大廳輪詢靠它判斷遊戲是否已開始
	FirstByGame(gameID uint) (*models.Round, error)
	// NextAfter 回傳該遊戲中 ID 大於 roundID 的下一個回合
	// 若其他玩家已推進回合，後到的請求改導向既有回合而不是重複建立
	NextAfter(gameID, roundID uint) (*models.Round, error)
	Update(round *models.Round) error
	ListIDsByGame(gameID uint) ([]uint, error)
	DeleteByGame(gameID uint) error
}

type roundRepository struct {
	db *storage.PostgresDB
}

func NewRoundRepository(db *storage.PostgresDB) RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) Create(round *models.Round) error {
	return r.db.Create(round).Error
}

func (r *roundRepository) FindByID(id uint) (*models.Round, error) {
	var round models.Round
	err := r.db.First(&round, id).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *roundRepository) FirstByGame(gameID uint) (*models.Round, error) {
	var round models.Round
	err := r.db.Where("game_id = ?", gameID).Order("id ASC").First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *roundRepository) NextAfter(gameID, roundID uint) (*models.Round, error) {
	var round models.Round
	err := r.db.Where("game_id = ? AND id > ?", gameID, roundID).Order("id ASC").First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *roundRepository) Update(round *models.Round) error {
	return r.db.Save(round).Error
}

func (r *roundRepository) ListIDsByGame(gameID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Round{}).Where("game_id = ?", gameID).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

func (r *roundRepository) DeleteByGame(gameID uint) error {
	return r.db.Where("game_id = ?", gameID).Delete(&models.Round{}).Error
}
