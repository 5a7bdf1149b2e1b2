package handlers

import (
	"net/http"

	"uchelper/api/dto"
	"uchelper/api/filters"
	playerservice "uchelper/api/services/player"
	"uchelper/pkg/database/models"
	"uchelper/pkg/messages"

	"github.com/gin-gonic/gin"
)

// PlayerHandler is the handler for the player endpoints.
type PlayerHandler struct {
	PlayerService *playerservice.PlayerService
}

type PlayerHandlerDependencies struct {
	PlayerService *playerservice.PlayerService
}

// NewPlayerHandler creates a new instance of the player handler.
func NewPlayerHandler(deps *PlayerHandlerDependencies) *PlayerHandler {
	return &PlayerHandler{
		PlayerService: deps.PlayerService,
	}
}

// Helper to bind the default URI params for players.
func (h *PlayerHandler) bindURIParams(c *gin.Context) (*filters.PlayerURIParams, error) {
	var pp filters.PlayerURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		return nil, err
	}
	return &pp, nil
}

// GetPlayer is the handler to return the profile card for an account id
// or username.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	pp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var qp filters.PlayerGetParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.PlayerService.GetPlayerCard(c, pp.Query, qp.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": card})
}

// GetPlayerByDiscord is the handler to return the account linked to a
// discord identity.
func (h *PlayerHandler) GetPlayerByDiscord(c *gin.Context) {
	var pp filters.PlayerDiscordURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.PlayerService.GetByDiscord(c, pp.DiscordID)
	if err != nil {
		respondError(c, err)
		return
	}
	if player == nil {
		respondError(c, playerservice.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.NewPlayerCard(player)})
}

// LinkPlayer is the handler to tie a discord account to a TETR.IO account.
func (h *PlayerHandler) LinkPlayer(c *gin.Context) {
	var bp filters.PlayerLinkParams
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.PlayerService.Link(c, bp.DiscordID, bp.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.NewPlayerCard(player)})
}

// UnlinkPlayer is the handler to remove an account link, by either side.
func (h *PlayerHandler) UnlinkPlayer(c *gin.Context) {
	var bp filters.PlayerUnlinkParams
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var player *models.PlayerEntry
	var err error
	switch {
	case bp.Username != "":
		player, err = h.PlayerService.UnlinkByTetrio(c, bp.Username)
	case bp.DiscordID != "":
		player, err = h.PlayerService.UnlinkByDiscord(c, bp.DiscordID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.MissingQueryMsg})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.NewPlayerCard(player)})
}

// SyncPlayers is the handler for the staff-triggered bulk leaderboard sync.
func (h *PlayerHandler) SyncPlayers(c *gin.Context) {
	users, err := h.PlayerService.UpdateFromLeaderboard(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"synced": len(users)}})
}
