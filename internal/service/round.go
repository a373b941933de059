package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"cookoff_web/internal/models"
	"cookoff_web/internal/repository"
)

// MaxAnswerLen 答案的長度上限，超過即拒絕
const MaxAnswerLen = 256

// RoundService 驅動回合狀態機：開局、收答案、投票、結算、推進到下一回合或決出贏家
// 階段門檻（所有人都交卷了嗎、都投票了嗎）不做快取，每次輪詢都從列數重新推導
type RoundService struct {
	repos             *repository.Repositories
	ingredientService *IngredientService
	wsManager         *WebSocketManager
}

func NewRoundService(repos *repository.Repositories, ingredientService *IngredientService, wsManager *WebSocketManager) *RoundService {
	return &RoundService{
		repos:             repos,
		ingredientService: ingredientService,
		wsManager:         wsManager,
	}
}

// PhaseStatus 是輪詢階段門檻的回應
type PhaseStatus struct {
	RoundID   uint              `json:"round_id"`
	Phase     models.RoundPhase `json:"phase"`
	Players   int64             `json:"players"`
	Submitted int64             `json:"submitted"`
	Votes     int64             `json:"votes"`
	Ready     bool              `json:"ready"` // 門檻已達成，客戶端應進入下一階段
	Final     bool              `json:"final"` // 投票結束且回合數已達上限，下一站是贏家頁
}

// ResponseView 是投票畫面上的一個選項
type ResponseView struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
	Mine  bool   `json:"mine"` // 自己的答案，前端需遮蔽不可投
}

// StartGame 由房主開始遊戲：抽三樣食材並建立第一回合
// 鎖住遊戲那一列再檢查，同時按兩次開始只會建出一個回合，後到者拿到既有的
func (s *RoundService) StartGame(gameID, callerID uint) (*models.Round, error) {
	var round *models.Round
	created := false
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		game, err := tx.Game.FindByIDForUpdate(gameID)
		if err != nil {
			return mapNotFound(err, ErrGameNotFound)
		}
		if callerID != game.HostID {
			return ErrForbidden
		}

		if existing, err := tx.Round.FirstByGame(gameID); err == nil {
			round = existing
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ingredients, err := s.ingredientService.PickNames(IngredientsPerRound)
		if err != nil {
			return err
		}

		round = &models.Round{
			GameID:      gameID,
			Number:      game.RoundNum,
			Ingredients: ingredients,
			Phase:       models.PhaseSubmit,
		}
		created = true
		return tx.Round.Create(round)
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.wsManager.BroadcastSystemMessage(gameID, fmt.Sprintf("第 %d 回合開始，食材：%s", round.Number, round.Ingredients))
	}
	return round, nil
}

// GetRound 回傳回合資料，並確認回合屬於指定的遊戲
func (s *RoundService) GetRound(gameID, roundID uint) (*models.Round, error) {
	round, err := s.repos.Round.FindByID(roundID)
	if err != nil {
		return nil, mapNotFound(err, ErrRoundNotFound)
	}
	if round.GameID != gameID {
		return nil, ErrRoundNotFound
	}
	return round, nil
}

// normalizeAnswer 去頭尾空白、壓縮連續空白並轉小寫，只用於重複偵測
func normalizeAnswer(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// SubmitAnswer 收下玩家這回合的答案
// 同一回合內：同一玩家只能交一次，正規化後相同的答案只能出現一次
// 應用層先查先擋，資料庫的唯一索引是最終防線
func (s *RoundService) SubmitAnswer(gameID, roundID, userID uint, text string) (*models.Response, error) {
	round, err := s.GetRound(gameID, roundID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Membership.FindByGameAndUser(round.GameID, userID); err != nil {
		return nil, mapNotFound(err, ErrNotMember)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) > MaxAnswerLen {
		return nil, ErrInvalidAnswer
	}
	norm := normalizeAnswer(trimmed)

	if _, err := s.repos.Response.FindByRoundAndUser(roundID, userID); err == nil {
		return nil, ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repos.Response.FindByRoundAndNorm(roundID, norm); err == nil {
		return nil, ErrDuplicateAnswer
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	response := &models.Response{
		RoundID:  roundID,
		UserID:   userID,
		Text:     trimmed, // 保留原始大小寫
		NormText: norm,
		Votes:    0,
	}
	if err := s.repos.Response.Create(response); err != nil {
		return nil, err
	}
	return response, nil
}

// SubmitStatus 輪詢交卷進度，全員交卷後回合進入投票階段
// 門檻由答案數對成員數推導；Phase 欄位只是順手記帳，不是判斷依據
func (s *RoundService) SubmitStatus(gameID, roundID uint) (*PhaseStatus, error) {
	round, err := s.GetRound(gameID, roundID)
	if err != nil {
		return nil, err
	}

	players, err := s.repos.Membership.CountByGame(round.GameID)
	if err != nil {
		return nil, err
	}
	if players == 0 {
		return nil, ErrNoPlayers
	}

	submitted, err := s.repos.Response.CountByRound(roundID)
	if err != nil {
		return nil, err
	}

	status := &PhaseStatus{
		RoundID:   roundID,
		Phase:     round.Phase,
		Players:   players,
		Submitted: submitted,
		Ready:     submitted >= players,
	}

	if status.Ready && round.Phase == models.PhaseSubmit {
		round.Phase = models.PhaseVote
		if err := s.repos.Round.Update(round); err != nil {
			return nil, err
		}
		status.Phase = models.PhaseVote
		s.wsManager.BroadcastSystemMessage(round.GameID, "所有人都交卷了，開始投票")
	}

	return status, nil
}

// ListResponses 回傳投票選項，標記出屬於查看者自己的答案
func (s *RoundService) ListResponses(gameID, roundID, viewerID uint) ([]ResponseView, error) {
	if _, err := s.GetRound(gameID, roundID); err != nil {
		return nil, err
	}

	responses, err := s.repos.Response.ListByRound(roundID)
	if err != nil {
		return nil, err
	}

	views := make([]ResponseView, 0, len(responses))
	for _, response := range responses {
		views = append(views, ResponseView{
			ID:    response.ID,
			Text:  response.Text,
			Votes: response.Votes,
			Mine:  response.UserID == viewerID,
		})
	}
	return views, nil
}

// CastVote 投下一票：寫入選票、答案票數加一、作者分數加一
// 三個效果在同一交易內完成，不允許只做一半
func (s *RoundService) CastVote(gameID, roundID, voterID, responseID uint) error {
	round, err := s.GetRound(gameID, roundID)
	if err != nil {
		return err
	}

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		response, err := tx.Response.FindByID(responseID)
		if err != nil {
			return mapNotFound(err, ErrResponseNotFound)
		}
		if response.RoundID != roundID {
			return ErrResponseNotFound
		}
		if response.UserID == voterID {
			return ErrSelfVote
		}

		if _, err := tx.Vote.FindByRoundAndVoter(roundID, voterID); err == nil {
			return ErrAlreadyVoted
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Vote.Create(&models.Vote{RoundID: roundID, VoterID: voterID, ResponseID: responseID}); err != nil {
			return err
		}
		if err := tx.Response.AddVote(responseID); err != nil {
			return err
		}

		// 作者可能已被踢出，沒有成員記錄就只計票不計分
		author, err := tx.Membership.FindByGameAndUser(round.GameID, response.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Membership.AddScore(author.ID, 1)
	})
	if err != nil {
		return err
	}

	s.wsManager.BroadcastSystemMessage(round.GameID, fmt.Sprintf("玩家 %d 已投票", voterID))
	return nil
}

// VoteStatus 輪詢投票進度，全員投完後回合進入結算階段
func (s *RoundService) VoteStatus(gameID, roundID uint) (*PhaseStatus, error) {
	round, err := s.GetRound(gameID, roundID)
	if err != nil {
		return nil, err
	}

	game, err := s.repos.Game.FindByID(round.GameID)
	if err != nil {
		return nil, mapNotFound(err, ErrGameNotFound)
	}

	players, err := s.repos.Membership.CountByGame(round.GameID)
	if err != nil {
		return nil, err
	}
	if players == 0 {
		return nil, ErrNoPlayers
	}

	votes, err := s.repos.Vote.CountByRound(roundID)
	if err != nil {
		return nil, err
	}

	status := &PhaseStatus{
		RoundID: roundID,
		Phase:   round.Phase,
		Players: players,
		Votes:   votes,
		Ready:   votes >= players,
	}

	if status.Ready {
		status.Final = game.RoundNum >= models.RoundCap
		if round.Phase == models.PhaseVote {
			round.Phase = models.PhaseResults
			if err := s.repos.Round.Update(round); err != nil {
				return nil, err
			}
			status.Phase = models.PhaseResults
			s.wsManager.BroadcastSystemMessage(round.GameID, "投票結束，本回合結算")
		}
	}

	return status, nil
}

// AdvanceRound 把遊戲推進到下一回合，或在回合數達上限時發出贏家信號
// 回傳 (下一回合, 是否決出贏家)
// 兩名玩家同時推進時，後到者導向先到者建立的回合；(game, number) 唯一索引擋住殘餘競爭
func (s *RoundService) AdvanceRound(gameID, currentRoundID uint) (*models.Round, bool, error) {
	var next *models.Round
	winner := false
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		game, err := tx.Game.FindByIDForUpdate(gameID)
		if err != nil {
			return mapNotFound(err, ErrGameNotFound)
		}

		if existing, err := tx.Round.NextAfter(gameID, currentRoundID); err == nil {
			next = existing
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if game.RoundNum >= models.RoundCap {
			winner = true
			return nil
		}

		game.RoundNum++
		if err := tx.Game.Update(game); err != nil {
			return err
		}

		ingredients, err := s.ingredientService.PickNames(IngredientsPerRound)
		if err != nil {
			return err
		}

		next = &models.Round{
			GameID:      gameID,
			Number:      game.RoundNum,
			Ingredients: ingredients,
			Phase:       models.PhaseSubmit,
		}
		return tx.Round.Create(next)
	})
	if err != nil {
		return nil, false, err
	}

	if winner {
		s.wsManager.BroadcastSystemMessage(gameID, "全部回合結束，前往頒獎台")
	} else if next != nil {
		s.wsManager.BroadcastSystemMessage(gameID, fmt.Sprintf("第 %d 回合開始，食材：%s", next.Number, next.Ingredients))
	}
	return next, winner, nil
}

// RoundResults 回傳目前排行榜與回合數，結算畫面輪詢用
func (s *RoundService) RoundResults(gameID uint) ([]Standing, int, error) {
	game, err := s.repos.Game.FindByID(gameID)
	if err != nil {
		return nil, 0, mapNotFound(err, ErrGameNotFound)
	}

	memberships, err := s.repos.Membership.ListByGame(gameID)
	if err != nil {
		return nil, 0, err
	}
	return Standings(memberships), game.RoundNum, nil
}

// Winner 決出贏家：分數最高者勝，同分時先加入者站上首位
func (s *RoundService) Winner(gameID uint) (Standing, []Standing, error) {
	if _, err := s.repos.Game.FindByID(gameID); err != nil {
		return Standing{}, nil, mapNotFound(err, ErrGameNotFound)
	}

	memberships, err := s.repos.Membership.ListByGame(gameID)
	if err != nil {
		return Standing{}, nil, err
	}
	return TopStanding(memberships)
}
