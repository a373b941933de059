package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cookoff_web/internal/models"
	"cookoff_web/internal/repository"
)

// GameService 管理遊戲房間的生命週期：建立、加入、離開、踢人與拆除
type GameService struct {
	repos     *repository.Repositories
	wsManager *WebSocketManager
}

func NewGameService(repos *repository.Repositories, wsManager *WebSocketManager) *GameService {
	return &GameService{
		repos:     repos,
		wsManager: wsManager,
	}
}

// LobbyView 是大廳輪詢的回應：成員名單、房主與是否已開局
type LobbyView struct {
	GameID         uint       `json:"game_id"`
	HostID         uint       `json:"host_id"`
	RoundNum       int        `json:"round_num"`
	Members        []Standing `json:"members"`
	CurrentRoundID uint       `json:"current_round_id"` // 0 表示尚未開局
}

// CreateGame 建立一場新遊戲，呼叫者即為房主並自動成為第一名成員
func (s *GameService) CreateGame(hostID uint) (*models.Game, error) {
	var game *models.Game
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		game = &models.Game{HostID: hostID, RoundNum: 1, Active: true}
		if err := tx.Game.Create(game); err != nil {
			return err
		}
		return tx.Membership.Create(&models.Membership{GameID: game.ID, UserID: hostID, Score: 0})
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

// GetLobby 回傳大廳狀態，非成員不可查看
func (s *GameService) GetLobby(gameID, userID uint) (*LobbyView, error) {
	game, err := s.repos.Game.FindByID(gameID)
	if err != nil {
		return nil, mapNotFound(err, ErrGameNotFound)
	}

	if _, err := s.repos.Membership.FindByGameAndUser(gameID, userID); err != nil {
		return nil, mapNotFound(err, ErrNotMember)
	}

	memberships, err := s.ListMembers(gameID)
	if err != nil {
		return nil, err
	}

	view := &LobbyView{
		GameID:   game.ID,
		HostID:   game.HostID,
		RoundNum: game.RoundNum,
		Members:  Standings(memberships),
	}

	// 已有回合表示遊戲已開始，客戶端應轉往遊戲畫面
	round, err := s.repos.Round.FirstByGame(gameID)
	if err == nil {
		view.CurrentRoundID = round.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return view, nil
}

// JoinGame 讓用戶加入遊戲
// 人數檢查與成員建立在同一交易內進行，並鎖定遊戲列防止併發擠進超額玩家
func (s *GameService) JoinGame(gameID, userID uint) error {
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := tx.Game.FindByIDForUpdate(gameID); err != nil {
			return mapNotFound(err, ErrGameNotFound)
		}

		if _, err := tx.Membership.FindByGameAndUser(gameID, userID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		count, err := tx.Membership.CountByGame(gameID)
		if err != nil {
			return err
		}
		if count >= models.MaxPlayers {
			return ErrGameFull
		}

		return tx.Membership.Create(&models.Membership{GameID: gameID, UserID: userID, Score: 0})
	})
	if err != nil {
		return err
	}

	s.wsManager.BroadcastSystemMessage(gameID, fmt.Sprintf("玩家 %d 加入遊戲", userID))
	return nil
}

// LeaveGame 讓用戶離開遊戲
// 房主離開時整場遊戲連同回合、答案、選票一併拆除
// 最後一名成員離開時同樣拆除；遊戲已不存在則視為已離開
func (s *GameService) LeaveGame(gameID, userID uint) error {
	torndown := false
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		game, err := tx.Game.FindByIDForUpdate(gameID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		membership, err := tx.Membership.FindByGameAndUser(gameID, userID)
		if err == nil {
			if err := tx.Membership.Delete(membership.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if userID == game.HostID {
			torndown = true
			return s.teardown(tx, game)
		}

		remaining, err := tx.Membership.CountByGame(gameID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			torndown = true
			return s.teardown(tx, game)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if torndown {
		s.wsManager.BroadcastSystemMessage(gameID, "遊戲已結束，房間關閉")
	} else {
		s.wsManager.BroadcastSystemMessage(gameID, fmt.Sprintf("玩家 %d 離開遊戲", userID))
	}
	return nil
}

// KickPlayer 讓房主把指定玩家移出遊戲，房主不能踢自己
func (s *GameService) KickPlayer(gameID, callerID, targetID uint) error {
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		game, err := tx.Game.FindByIDForUpdate(gameID)
		if err != nil {
			return mapNotFound(err, ErrGameNotFound)
		}

		if callerID != game.HostID {
			return ErrForbidden
		}
		if targetID == game.HostID {
			return ErrForbidden
		}

		membership, err := tx.Membership.FindByGameAndUser(gameID, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Membership.Delete(membership.ID)
	})
	if err != nil {
		return err
	}

	s.wsManager.BroadcastSystemMessage(gameID, fmt.Sprintf("玩家 %d 被房主移出遊戲", targetID))
	return nil
}

// ListMembers 依加入順序回傳成員與分數
func (s *GameService) ListMembers(gameID uint) ([]models.Membership, error) {
	return s.repos.Membership.ListByGame(gameID)
}

// teardown 刪除遊戲與其擁有的全部資料：選票、答案、回合、成員，最後是遊戲本身
func (s *GameService) teardown(tx *repository.Repositories, game *models.Game) error {
	roundIDs, err := tx.Round.ListIDsByGame(game.ID)
	if err != nil {
		return err
	}
	if err := tx.Vote.DeleteByRounds(roundIDs); err != nil {
		return err
	}
	if err := tx.Response.DeleteByRounds(roundIDs); err != nil {
		return err
	}
	if err := tx.Round.DeleteByGame(game.ID); err != nil {
		return err
	}
	if err := tx.Membership.DeleteByGame(game.ID); err != nil {
		return err
	}
	return tx.Game.Delete(game.ID)
}

// mapNotFound 把 gorm 的查無資料轉成對應的業務錯誤，其他錯誤原樣傳回
func mapNotFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
