package repository

import (
	"cookoff_web/internal/models"
	"cookoff_web/internal/storage"
)

type VoteRepository interface {
	Create(vote *models.Vote) error
	CountByRound(roundID uint) (int64, error)
	FindByRoundAndVoter(roundID, voterID uint) (*models.Vote, error)
	DeleteByRounds(roundIDs []uint) error
}

type voteRepository struct {
	db *storage.PostgresDB
}

func NewVoteRepository(db *storage.PostgresDB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

func (r *voteRepository) CountByRound(roundID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).Where("round_id = ?", roundID).Count(&count).Error
	return count, err
}

func (r *voteRepository) FindByRoundAndVoter(roundID, voterID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("round_id = ? AND voter_id = ?", roundID, voterID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) DeleteByRounds(roundIDs []uint) error {
	if len(roundIDs) == 0 {
		return nil
	}
	return r.db.Where("round_id IN ?", roundIDs).Delete(&models.Vote{}).Error
}
