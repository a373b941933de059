package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cookoff_web/internal/models"
)

func newRoundService() (*testRepos, *RoundService) {
	mocks, repos := newTestRepos()
	ingredientService := NewIngredientService(repos.Ingredient)
	return mocks, NewRoundService(repos, ingredientService, NewWebSocketManager())
}

func roundInPhase(roundID, gameID uint, number int, phase models.RoundPhase) *models.Round {
	round := &models.Round{GameID: gameID, Number: number, Ingredients: "雞肉, 洋蔥, 起司", Phase: phase}
	round.ID = roundID
	return round
}

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"beef stew", "beef stew"},
		{"beef  Stew", "beef stew"},
		{"  Beef   STEW  ", "beef stew"},
		{"BeefStew", "beefstew"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, normalizeAnswer(c.in), "輸入 %q", c.in)
	}
}

func TestStartGame_OnlyHost(t *testing.T) {
	mocks, s := newRoundService()
	mocks.game.On("FindByIDForUpdate", uint(1)).Return(gameWithHost(1, 9), nil)

	_, err := s.StartGame(1, 2)
	assert.ErrorIs(t, err, ErrForbidden)
	mocks.round.AssertNotCalled(t, "Create", mock.Anything)
}

func TestStartGame_CreatesFirstRound(t *testing.T) {
	mocks, s := newRoundService()
	mocks.game.On("FindByIDForUpdate", uint(1)).Return(gameWithHost(1, 9), nil)
	mocks.round.On("FirstByGame", uint(1)).Return(nil, gorm.ErrRecordNotFound)
	mocks.ingredient.On("FindAll").Return(makeCatalog("雞肉", "洋蔥", "起司", "番茄"), nil)
	mocks.round.On("Create", mock.MatchedBy(func(r *models.Round) bool {
		return r.GameID == 1 && r.Number == 1 && r.Phase == models.PhaseSubmit
	})).Return(nil)

	round, err := s.StartGame(1, 9)
	require.NoError(t, err)
	assert.Len(t, round.IngredientList(), 3)
	mocks.round.AssertExpectations(t)
}

// 兩個開始請求搶同一場遊戲時，晚進交易的那個要拿到先建好的回合，而不是再建一個
func TestStartGame_SecondCallGetsExistingRound(t *testing.T) {
	mocks, s := newRoundService()
	existing := roundInPhase(55, 1, 1, models.PhaseSubmit)
	mocks.game.On("FindByIDForUpdate", uint(1)).Return(gameWithHost(1, 9), nil)
	mocks.round.On("FirstByGame", uint(1)).Return(existing, nil)

	round, err := s.StartGame(1, 9)
	require.NoError(t, err)
	assert.Equal(t, uint(55), round.ID)
	mocks.round.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitAnswer_RejectsBlank(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("FindByGameAndUser", uint(1), uint(2)).Return(&models.Membership{GameID: 1, UserID: 2}, nil)

	_, err := s.SubmitAnswer(1, 10, 2, "   ")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestSubmitAnswer_RejectsOverlong(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("FindByGameAndUser", uint(1), uint(2)).Return(&models.Membership{GameID: 1, UserID: 2}, nil)

	_, err := s.SubmitAnswer(1, 10, 2, strings.Repeat("a", MaxAnswerLen+1))
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestSubmitAnswer_NonMemberRejected(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("FindByGameAndUser", uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)

	_, err := s.SubmitAnswer(1, 10, 2, "beef stew")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestSubmitAnswer_NormalizedCollision(t *testing.T) {
	// A 已交 "beef stew"，B 交 "beef  Stew" 應被擋下
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("FindByGameAndUser", uint(1), uint(3)).Return(&models.Membership{GameID: 1, UserID: 3}, nil)
	mocks.response.On("FindByRoundAndUser", uint(10), uint(3)).Return(nil, gorm.ErrRecordNotFound)
	mocks.response.On("FindByRoundAndNorm", uint(10), "beef stew").
		Return(&models.Response{RoundID: 10, UserID: 2, Text: "beef stew"}, nil)

	_, err := s.SubmitAnswer(1, 10, 3, "beef  Stew")
	assert.ErrorIs(t, err, ErrDuplicateAnswer)
	mocks.response.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitAnswer_SecondSubmissionRejected(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("FindByGameAndUser", uint(1), uint(2)).Return(&models.Membership{GameID: 1, UserID: 2}, nil)
	mocks.response.On("FindByRoundAndUser", uint(10), uint(2)).
		Return(&models.Response{RoundID: 10, UserID: 2}, nil)

	_, err := s.SubmitAnswer(1, 10, 2, "another dish")
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitAnswer_KeepsOriginalCasing(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("FindByGameAndUser", uint(1), uint(2)).Return(&models.Membership{GameID: 1, UserID: 2}, nil)
	mocks.response.On("FindByRoundAndUser", uint(10), uint(2)).Return(nil, gorm.ErrRecordNotFound)
	mocks.response.On("FindByRoundAndNorm", uint(10), "beef stew").Return(nil, gorm.ErrRecordNotFound)
	mocks.response.On("Create", mock.AnythingOfType("*models.Response")).Return(nil)

	response, err := s.SubmitAnswer(1, 10, 2, "  Beef Stew ")
	require.NoError(t, err)
	assert.Equal(t, "Beef Stew", response.Text)
	assert.Equal(t, "beef stew", response.NormText)
	assert.Equal(t, 0, response.Votes)
}

func TestSubmitStatus_NotReady(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("CountByGame", uint(1)).Return(int64(2), nil)
	mocks.response.On("CountByRound", uint(10)).Return(int64(1), nil)

	status, err := s.SubmitStatus(1, 10)
	require.NoError(t, err)
	assert.False(t, status.Ready)
	assert.Equal(t, models.PhaseSubmit, status.Phase)
	mocks.round.AssertNotCalled(t, "Update", mock.Anything)
}

func TestSubmitStatus_AllSubmittedAdvancesPhase(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("CountByGame", uint(1)).Return(int64(2), nil)
	mocks.response.On("CountByRound", uint(10)).Return(int64(2), nil)
	mocks.round.On("Update", mock.MatchedBy(func(r *models.Round) bool {
		return r.Phase == models.PhaseVote
	})).Return(nil)

	status, err := s.SubmitStatus(1, 10)
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.Equal(t, models.PhaseVote, status.Phase)
	mocks.round.AssertExpectations(t)
}

func TestSubmitStatus_NoPlayers(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseSubmit), nil)
	mocks.membership.On("CountByGame", uint(1)).Return(int64(0), nil)

	_, err := s.SubmitStatus(1, 10)
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestListResponses_MarksOwnAnswer(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseVote), nil)
	mine := models.Response{RoundID: 10, UserID: 2, Text: "beef stew"}
	mine.ID = 100
	other := models.Response{RoundID: 10, UserID: 3, Text: "onion soup"}
	other.ID = 101
	mocks.response.On("ListByRound", uint(10)).Return([]models.Response{mine, other}, nil)

	views, err := s.ListResponses(1, 10, 2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Mine)
	assert.False(t, views[1].Mine)
}

func TestCastVote_SelfVoteRejected(t *testing.T) {
	mocks, s := newRoundService()
	response := &models.Response{RoundID: 10, UserID: 2}
	response.ID = 100

	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseVote), nil)
	mocks.response.On("FindByID", uint(100)).Return(response, nil)

	assert.ErrorIs(t, s.CastVote(1, 10, 2, 100), ErrSelfVote)
	mocks.vote.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCastVote_SecondVoteRejected(t *testing.T) {
	mocks, s := newRoundService()
	response := &models.Response{RoundID: 10, UserID: 3}
	response.ID = 100

	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseVote), nil)
	mocks.response.On("FindByID", uint(100)).Return(response, nil)
	mocks.vote.On("FindByRoundAndVoter", uint(10), uint(2)).Return(&models.Vote{RoundID: 10, VoterID: 2}, nil)

	assert.ErrorIs(t, s.CastVote(1, 10, 2, 100), ErrAlreadyVoted)
	mocks.vote.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCastVote_WrongRoundResponse(t *testing.T) {
	mocks, s := newRoundService()
	response := &models.Response{RoundID: 11, UserID: 3}
	response.ID = 100

	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseVote), nil)
	mocks.response.On("FindByID", uint(100)).Return(response, nil)

	assert.ErrorIs(t, s.CastVote(1, 10, 2, 100), ErrResponseNotFound)
}

func TestCastVote_AppliesAllThreeEffects(t *testing.T) {
	// 寫選票、答案加票、作者加分必須全部發生
	mocks, s := newRoundService()
	response := &models.Response{RoundID: 10, UserID: 3}
	response.ID = 100
	author := &models.Membership{GameID: 1, UserID: 3}
	author.ID = 88

	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseVote), nil)
	mocks.response.On("FindByID", uint(100)).Return(response, nil)
	mocks.vote.On("FindByRoundAndVoter", uint(10), uint(2)).Return(nil, gorm.ErrRecordNotFound)
	mocks.vote.On("Create", mock.MatchedBy(func(v *models.Vote) bool {
		return v.RoundID == 10 && v.VoterID == 2 && v.ResponseID == 100
	})).Return(nil)
	mocks.response.On("AddVote", uint(100)).Return(nil)
	mocks.membership.On("FindByGameAndUser", uint(1), uint(3)).Return(author, nil)
	mocks.membership.On("AddScore", uint(88), 1).Return(nil)

	require.NoError(t, s.CastVote(1, 10, 2, 100))
	mocks.vote.AssertExpectations(t)
	mocks.response.AssertExpectations(t)
	mocks.membership.AssertExpectations(t)
}

func TestCastVote_KickedAuthorStillCounted(t *testing.T) {
	// 作者已被踢出時照樣計票，只是沒有分數可加
	mocks, s := newRoundService()
	response := &models.Response{RoundID: 10, UserID: 3}
	response.ID = 100

	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseVote), nil)
	mocks.response.On("FindByID", uint(100)).Return(response, nil)
	mocks.vote.On("FindByRoundAndVoter", uint(10), uint(2)).Return(nil, gorm.ErrRecordNotFound)
	mocks.vote.On("Create", mock.AnythingOfType("*models.Vote")).Return(nil)
	mocks.response.On("AddVote", uint(100)).Return(nil)
	mocks.membership.On("FindByGameAndUser", uint(1), uint(3)).Return(nil, gorm.ErrRecordNotFound)

	require.NoError(t, s.CastVote(1, 10, 2, 100))
	mocks.membership.AssertNotCalled(t, "AddScore", mock.Anything, mock.Anything)
}

func TestVoteStatus_AllVotedAdvancesToResults(t *testing.T) {
	mocks, s := newRoundService()
	mocks.round.On("FindByID", uint(10)).Return(roundInPhase(10, 1, 1, models.PhaseVote), nil)
	mocks.game.On("FindByID", uint(1)).Return(gameWithHost(1, 9), nil)
	mocks.membership.On("CountByGame", uint(1)).Return(int64(2), nil)
	mocks.vote.On("CountByRound", uint(10)).Return(int64(2), nil)
	mocks.round.On("Update", mock.MatchedBy(func(r *models.Round) bool {
		return r.Phase == models.PhaseResults
	})).Return(nil)

	status, err := s.VoteStatus(1, 10)
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.False(t, status.Final)
	assert.Equal(t, models.PhaseResults, status.Phase)
}

func TestVoteStatus_FinalRoundSignalsWinnerNext(t *testing.T) {
	mocks, s := newRoundService()
	game := gameWithHost(1, 9)
	game.RoundNum = models.RoundCap

	mocks.round.On("FindByID", uint(30)).Return(roundInPhase(30, 1, 3, models.PhaseVote), nil)
	mocks.game.On("FindByID", uint(1)).Return(game, nil)
	mocks.membership.On("CountByGame", uint(1)).Return(int64(2), nil)
	mocks.vote.On("CountByRound", uint(30)).Return(int64(2), nil)
	mocks.round.On("Update", mock.AnythingOfType("*models.Round")).Return(nil)

	status, err := s.VoteStatus(1, 30)
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.True(t, status.Final)
}

func TestAdvanceRound_RedirectsToExistingLaterRound(t *testing.T) {
	mocks, s := newRoundService()
	later := roundInPhase(20, 1, 2, models.PhaseSubmit)

	mocks.game.On("FindByIDForUpdate", uint(1)).Return(gameWithHost(1, 9), nil)
	mocks.round.On("NextAfter", uint(1), uint(10)).Return(later, nil)

	next, winner, err := s.AdvanceRound(1, 10)
	require.NoError(t, err)
	assert.False(t, winner)
	assert.Equal(t, uint(20), next.ID)
	mocks.round.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAdvanceRound_CreatesNextRound(t *testing.T) {
	mocks, s := newRoundService()
	game := gameWithHost(1, 9)
	game.RoundNum = 1

	mocks.game.On("FindByIDForUpdate", uint(1)).Return(game, nil)
	mocks.round.On("NextAfter", uint(1), uint(10)).Return(nil, gorm.ErrRecordNotFound)
	mocks.game.On("Update", mock.MatchedBy(func(g *models.Game) bool {
		return g.RoundNum == 2
	})).Return(nil)
	mocks.ingredient.On("FindAll").Return(makeCatalog("雞肉", "洋蔥", "起司", "番茄"), nil)
	mocks.round.On("Create", mock.MatchedBy(func(r *models.Round) bool {
		return r.GameID == 1 && r.Number == 2 && r.Phase == models.PhaseSubmit
	})).Return(nil)

	next, winner, err := s.AdvanceRound(1, 10)
	require.NoError(t, err)
	assert.False(t, winner)
	assert.Equal(t, 2, next.Number)
	mocks.game.AssertExpectations(t)
}

func TestAdvanceRound_AtCapSignalsWinner(t *testing.T) {
	mocks, s := newRoundService()
	game := gameWithHost(1, 9)
	game.RoundNum = models.RoundCap

	mocks.game.On("FindByIDForUpdate", uint(1)).Return(game, nil)
	mocks.round.On("NextAfter", uint(1), uint(30)).Return(nil, gorm.ErrRecordNotFound)

	next, winner, err := s.AdvanceRound(1, 30)
	require.NoError(t, err)
	assert.True(t, winner)
	assert.Nil(t, next)
	// 永遠不會出現第四回合
	mocks.round.AssertNotCalled(t, "Create", mock.Anything)
}

func TestWinner_NoPlayers(t *testing.T) {
	mocks, s := newRoundService()
	mocks.game.On("FindByID", uint(1)).Return(gameWithHost(1, 9), nil)
	mocks.membership.On("ListByGame", uint(1)).Return([]models.Membership{}, nil)

	_, _, err := s.Winner(1)
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestWinner_HighestScoreWins(t *testing.T) {
	mocks, s := newRoundService()
	mocks.game.On("FindByID", uint(1)).Return(gameWithHost(1, 9), nil)
	mocks.membership.On("ListByGame", uint(1)).Return([]models.Membership{
		member(9, "小安", 1),
		member(2, "小比", 4),
	}, nil)

	winner, standings, err := s.Winner(1)
	require.NoError(t, err)
	assert.Equal(t, uint(2), winner.UserID)
	assert.Equal(t, 4, winner.Score)
	require.Len(t, standings, 2)
	assert.Equal(t, uint(9), standings[1].UserID)
}
