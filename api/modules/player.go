package modules

import (
	"uchelper/api/cache"
	"uchelper/api/handlers"
	playerservice "uchelper/api/services/player"
)

func initializePlayerService(deps *ModuleDependencies) *playerservice.PlayerService {
	cardCache := cache.NewPlayerCardCache(deps.Redis)

	playerDeps := &playerservice.PlayerServiceDeps{
		DB:     deps.DB,
		Tetrio: deps.Tetrio,
		Tenchi: deps.Tenchi,
		Redis:  deps.Redis,
		Cards:  cardCache,
	}

	return playerservice.NewPlayerService(playerDeps)
}

func initializePlayerHandler(playerService *playerservice.PlayerService) *handlers.PlayerHandler {
	playerHandlerDeps := &handlers.PlayerHandlerDependencies{
		PlayerService: playerService,
	}

	return handlers.NewPlayerHandler(playerHandlerDeps)
}
