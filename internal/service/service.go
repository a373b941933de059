package service

import (
	"cookoff_web/internal/repository"
)

type Services struct {
	User       *UserService
	Game       *GameService
	Round      *RoundService
	Ingredient *IngredientService
	WebSocket  *WebSocketManager
}

func NewServices(repos *repository.Repositories) *Services {
	wsManager := NewWebSocketManager()
	ingredientService := NewIngredientService(repos.Ingredient)

	return &Services{
		User:       NewUserService(repos.User),
		Game:       NewGameService(repos, wsManager),
		Round:      NewRoundService(repos, ingredientService, wsManager),
		Ingredient: ingredientService,
		WebSocket:  wsManager,
	}
}
