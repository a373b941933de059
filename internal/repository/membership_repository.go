package repository

import (
	"gorm.io/gorm"

	"cookoff_web/internal/models"
	"cookoff_web/internal/storage"
)

type MembershipRepository interface {
	Create(membership *models.Membership) error
	FindByGameAndUser(gameID, userID uint) (*models.Membership, error)
	// ListByGame 依加入順序回傳成員，並帶出玩家資料
	ListByGame(gameID uint) ([]models.Membership, error)
	CountByGame(gameID uint) (int64, error)
	// AddScore 以單一 UPDATE 對分數做相對遞增，避免讀改寫競爭
	AddScore(id uint, delta int) error
	// Delete 採硬刪除，讓出 (game_id, user_id) 唯一索引的位置，玩家離開後才能重新加入
	Delete(id uint) error
	DeleteByGame(gameID uint) error
}

type membershipRepository struct {
	db *storage.PostgresDB
}

func NewMembershipRepository(db *storage.PostgresDB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

func (r *membershipRepository) FindByGameAndUser(gameID, userID uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) ListByGame(gameID uint) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Preload("User").Where("game_id = ?", gameID).Order("id ASC").Find(&memberships).Error
	return memberships, err
}

func (r *membershipRepository) CountByGame(gameID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).Where("game_id = ?", gameID).Count(&count).Error
	return count, err
}

func (r *membershipRepository) AddScore(id uint, delta int) error {
	return r.db.Model(&models.Membership{}).Where("id = ?", id).
		UpdateColumn("score", gorm.Expr("score + ?", delta)).Error
}

func (r *membershipRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Membership{}, id).Error
}

func (r *membershipRepository) DeleteByGame(gameID uint) error {
	return r.db.Unscoped().Where("game_id = ?", gameID).Delete(&models.Membership{}).Error
}
