package modules

import (
	"uchelper/api/handlers"
	playerservice "uchelper/api/services/player"
	tournamentservice "uchelper/api/services/tournament"
)

func initializeTournamentHandler(deps *ModuleDependencies, playerService *playerservice.PlayerService) *handlers.TournamentHandler {
	tournamentDeps := &tournamentservice.TournamentServiceDeps{
		DB:      deps.DB,
		Players: playerService,
	}

	tournamentService := tournamentservice.NewTournamentService(tournamentDeps)

	tournamentHandlerDeps := &handlers.TournamentHandlerDependencies{
		TournamentService: tournamentService,
	}

	return handlers.NewTournamentHandler(tournamentHandlerDeps)
}
