package routes

import (
	"uchelper/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.PlayerHandler:
			r.registerPlayerHandler(handler)
		case *handlers.TournamentHandler:
			r.registerTournamentHandler(handler)
		}
	}
}

// Register the player handler.
func (r *Router) registerPlayerHandler(handler *handlers.PlayerHandler) {
	players := r.api.Group("/players")
	{
		players.GET("/discord/:discordID", handler.GetPlayerByDiscord)
		players.POST("/link", handler.LinkPlayer)
		players.POST("/unlink", handler.UnlinkPlayer)
		players.POST("/sync", handler.SyncPlayers)
		players.GET("/:query", handler.GetPlayer)
	}
}

// Register the tournament handler.
func (r *Router) registerTournamentHandler(handler *handlers.TournamentHandler) {
	tournaments := r.api.Group("/tournaments")
	{
		tournaments.POST("", handler.CreateTournament)
		tournaments.GET("/active", handler.GetActiveTournament)
		tournaments.PUT("/active", handler.SetActiveTournament)
		tournaments.POST("/registrations", handler.Register)
		tournaments.DELETE("/registrations", handler.Unregister)
		tournaments.POST("/check-ins", handler.RecordCheckIn)
		tournaments.GET("/check-ins", handler.GetCheckedIn)
		tournaments.GET("/:query", handler.GetTournament)
		tournaments.POST("/:query/snapshot", handler.CaptureSnapshot)
		tournaments.GET("/:query/players", handler.GetRegisteredPlayers)
		tournaments.GET("/:query/export", handler.ExportRegistrations)
		tournaments.PUT("/:query/check-in-message", handler.SetCheckInMessage)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
