package modules

import (
	"uchelper/api/handlers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"uchelper/pkg/redis"
	"uchelper/pkg/tenchi"
	"uchelper/pkg/tetrio"
)

// Module containing the necessary handlers.
type Module struct {
	Router            *gin.Engine
	PlayerHandler     *handlers.PlayerHandler
	TournamentHandler *handlers.TournamentHandler
}

// ModuleDependencies are the shared resources the handlers build on.
type ModuleDependencies struct {
	DB     *gorm.DB
	Redis  *redis.RedisClient
	Tetrio tetrio.Client
	Tenchi tenchi.Client
}

// NewModule creates a module with all the necessary handlers initialized.
// The player service is built once, the tournament flow resolves players
// through the same instance.
func NewModule(deps *ModuleDependencies) *Module {
	router := gin.Default()

	playerService := initializePlayerService(deps)

	return &Module{
		Router:            router,
		PlayerHandler:     initializePlayerHandler(playerService),
		TournamentHandler: initializeTournamentHandler(deps, playerService),
	}
}
