package service

import (
	"github.com/stretchr/testify/mock"

	"cookoff_web/internal/models"
	"cookoff_web/internal/repository"
)

// repository 介面的測試替身，組成一個沒有真實資料庫的 Repositories
// Transaction 在這種組裝下會直接原地執行

// --- GameRepository ---

type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(game *models.Game) error {
	args := m.Called(game)
	return args.Error(0)
}

func (m *MockGameRepository) FindByID(id uint) (*models.Game, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) FindByIDForUpdate(id uint) (*models.Game, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) Update(game *models.Game) error {
	args := m.Called(game)
	return args.Error(0)
}

func (m *MockGameRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// --- MembershipRepository ---

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(membership *models.Membership) error {
	args := m.Called(membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) FindByGameAndUser(gameID, userID uint) (*models.Membership, error) {
	args := m.Called(gameID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListByGame(gameID uint) ([]models.Membership, error) {
	args := m.Called(gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Membership), args.Error(1)
}

func (m *MockMembershipRepository) CountByGame(gameID uint) (int64, error) {
	args := m.Called(gameID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepository) AddScore(id uint, delta int) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMembershipRepository) DeleteByGame(gameID uint) error {
	args := m.Called(gameID)
	return args.Error(0)
}

// --- RoundRepository ---

type MockRoundRepository struct {
	mock.Mock
}

func (m *MockRoundRepository) Create(round *models.Round) error {
	args := m.Called(round)
	return args.Error(0)
}

func (m *MockRoundRepository) FindByID(id uint) (*models.Round, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Round), args.Error(1)
}

func (m *MockRoundRepository) FirstByGame(gameID uint) (*models.Round, error) {
	args := m.Called(gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Round), args.Error(1)
}

func (m *MockRoundRepository) NextAfter(gameID, roundID uint) (*models.Round, error) {
	args := m.Called(gameID, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Round), args.Error(1)
}

func (m *MockRoundRepository) Update(round *models.Round) error {
	args := m.Called(round)
	return args.Error(0)
}

func (m *MockRoundRepository) ListIDsByGame(gameID uint) ([]uint, error) {
	args := m.Called(gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockRoundRepository) DeleteByGame(gameID uint) error {
	args := m.Called(gameID)
	return args.Error(0)
}

// --- ResponseRepository ---

type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(response *models.Response) error {
	args := m.Called(response)
	return args.Error(0)
}

func (m *MockResponseRepository) FindByID(id uint) (*models.Response, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) ListByRound(roundID uint) ([]models.Response, error) {
	args := m.Called(roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Response), args.Error(1)
}

func (m *MockResponseRepository) CountByRound(roundID uint) (int64, error) {
	args := m.Called(roundID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResponseRepository) FindByRoundAndNorm(roundID uint, normText string) (*models.Response, error) {
	args := m.Called(roundID, normText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) FindByRoundAndUser(roundID, userID uint) (*models.Response, error) {
	args := m.Called(roundID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) AddVote(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockResponseRepository) DeleteByRounds(roundIDs []uint) error {
	args := m.Called(roundIDs)
	return args.Error(0)
}

// --- VoteRepository ---

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Create(vote *models.Vote) error {
	args := m.Called(vote)
	return args.Error(0)
}

func (m *MockVoteRepository) CountByRound(roundID uint) (int64, error) {
	args := m.Called(roundID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoteRepository) FindByRoundAndVoter(roundID, voterID uint) (*models.Vote, error) {
	args := m.Called(roundID, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteRepository) DeleteByRounds(roundIDs []uint) error {
	args := m.Called(roundIDs)
	return args.Error(0)
}

// --- IngredientRepository ---

type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Create(ingredient *models.Ingredient) error {
	args := m.Called(ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) FindAll() ([]models.Ingredient, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// --- UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// testRepos 用替身組裝一個 Repositories，沒有資料庫，交易原地執行
type testRepos struct {
	game       *MockGameRepository
	membership *MockMembershipRepository
	round      *MockRoundRepository
	response   *MockResponseRepository
	vote       *MockVoteRepository
	ingredient *MockIngredientRepository
	user       *MockUserRepository
}

func newTestRepos() (*testRepos, *repository.Repositories) {
	mocks := &testRepos{
		game:       new(MockGameRepository),
		membership: new(MockMembershipRepository),
		round:      new(MockRoundRepository),
		response:   new(MockResponseRepository),
		vote:       new(MockVoteRepository),
		ingredient: new(MockIngredientRepository),
		user:       new(MockUserRepository),
	}
	repos := &repository.Repositories{
		User:       mocks.user,
		Game:       mocks.game,
		Membership: mocks.membership,
		Round:      mocks.round,
		Response:   mocks.response,
		Vote:       mocks.vote,
		Ingredient: mocks.ingredient,
	}
	return mocks, repos
}
