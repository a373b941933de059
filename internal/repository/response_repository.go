package repository

import (
	"gorm.io/gorm"

	"cookoff_web/internal/models"
	"cookoff_web/internal/storage"
)

type ResponseRepository interface {
	Create(response *models.Response) error
	FindByID(id uint) (*models.Response, error)
	ListByRound(roundID uint) ([]models.Response, error)
	CountByRound(roundID uint) (int64, error)
	FindByRoundAndNorm(roundID uint, normText string) (*models.Response, error)
	FindByRoundAndUser(roundID, userID uint) (*models.Response, error)
	// AddVote 以單一 UPDATE 遞增答案的得票數
	AddVote(id uint) error
	DeleteByRounds(roundIDs []uint) error
}

type responseRepository struct {
	db *storage.PostgresDB
}

func NewResponseRepository(db *storage.PostgresDB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(response *models.Response) error {
	return r.db.Create(response).Error
}

func (r *responseRepository) FindByID(id uint) (*models.Response, error) {
	var response models.Response
	err := r.db.First(&response, id).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) ListByRound(roundID uint) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.Where("round_id = ?", roundID).Order("id ASC").Find(&responses).Error
	return responses, err
}

func (r *responseRepository) CountByRound(roundID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Response{}).Where("round_id = ?", roundID).Count(&count).Error
	return count, err
}

func (r *responseRepository) FindByRoundAndNorm(roundID uint, normText string) (*models.Response, error) {
	var response models.Response
	err := r.db.Where("round_id = ? AND norm_text = ?", roundID, normText).First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByRoundAndUser(roundID, userID uint) (*models.Response, error) {
	var response models.Response
	err := r.db.Where("round_id = ? AND user_id = ?", roundID, userID).First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) AddVote(id uint) error {
	return r.db.Model(&models.Response{}).Where("id = ?", id).
		UpdateColumn("votes", gorm.Expr("votes + ?", 1)).Error
}

func (r *responseRepository) DeleteByRounds(roundIDs []uint) error {
	if len(roundIDs) == 0 {
		return nil
	}
	return r.db.Where("round_id IN ?", roundIDs).Delete(&models.Response{}).Error
}
