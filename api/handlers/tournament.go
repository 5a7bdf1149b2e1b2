package handlers

import (
	"fmt"
	"net/http"

	"uchelper/api/dto"
	"uchelper/api/filters"
	tournamentservice "uchelper/api/services/tournament"
	"uchelper/pkg/database/models"
	"uchelper/pkg/tetrio"

	"github.com/gin-gonic/gin"
)

// TournamentHandler is the handler for the tournament endpoints.
type TournamentHandler struct {
	TournamentService *tournamentservice.TournamentService
}

type TournamentHandlerDependencies struct {
	TournamentService *tournamentservice.TournamentService
}

// NewTournamentHandler creates a new instance of the tournament handler.
func NewTournamentHandler(deps *TournamentHandlerDependencies) *TournamentHandler {
	return &TournamentHandler{
		TournamentService: deps.TournamentService,
	}
}

// Helper to bind the default URI params for tournaments.
func (h *TournamentHandler) bindURIParams(c *gin.Context) (*filters.TournamentURIParams, error) {
	var tp filters.TournamentURIParams
	if err := c.ShouldBindUri(&tp); err != nil {
		return nil, err
	}
	return &tp, nil
}

// CreateTournament is the handler to open a new tournament.
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var bp filters.TournamentCreateParams
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	maxRank := tetrio.ParseRank(bp.MaxRank)
	if maxRank == tetrio.RankUnranked {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown rank code: %s", bp.MaxRank)})
		return
	}

	restrictions := models.Restrictions{
		MaxRank:  maxRank,
		MaxRD:    bp.MaxRD,
		MinGames: bp.MinGames,
	}

	tournament, err := h.TournamentService.Create(c, bp.Name, bp.Shorthand, restrictions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.NewTournamentInfo(tournament)})
}

// GetTournament is the handler to look a tournament up by name or shorthand.
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	tp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.TournamentService.Get(c, tp.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.NewTournamentInfo(tournament)})
}

// GetActiveTournament is the handler to return the running tournament.
func (h *TournamentHandler) GetActiveTournament(c *gin.Context) {
	tournament, err := h.TournamentService.GetActive(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.NewTournamentInfo(tournament)})
}

// SetActiveTournament is the handler to switch the running tournament.
// An empty query deactivates every tournament.
func (h *TournamentHandler) SetActiveTournament(c *gin.Context) {
	var bp filters.TournamentSetActiveParams
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.TournamentService.SetActive(c, bp.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	if tournament == nil {
		c.JSON(http.StatusOK, gin.H{"result": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.NewTournamentInfo(tournament)})
}

// CaptureSnapshot is the handler to freeze the announcement day stats.
func (h *TournamentHandler) CaptureSnapshot(c *gin.Context) {
	tp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, count, err := h.TournamentService.CaptureSnapshot(c, tp.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"tournament":    dto.NewTournamentInfo(tournament),
		"snapshotted":   count,
		"snapshottedAt": tournament.SnapshottedAt,
	}})
}

// Register is the handler to sign a player up for the active tournament.
func (h *TournamentHandler) Register(c *gin.Context) {
	var bp filters.RegisterParams
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, tournament, err := h.TournamentService.Register(c, tournamentservice.RegisterRequest{
		DiscordID:     bp.DiscordID,
		Username:      bp.Username,
		StaffOverride: bp.StaffOverride,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"player":     dto.NewPlayerCard(player),
		"tournament": dto.NewTournamentInfo(tournament),
	}})
}

// Unregister is the handler to take a player off the list.
func (h *TournamentHandler) Unregister(c *gin.Context) {
	var bp filters.UnregisterParams
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, tournament, err := h.TournamentService.Unregister(c, bp.DiscordID, bp.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"player":     dto.NewPlayerCard(player),
		"tournament": dto.NewTournamentInfo(tournament),
	}})
}

// GetRegisteredPlayers is the handler to list a tournament's sign-ups.
func (h *TournamentHandler) GetRegisteredPlayers(c *gin.Context) {
	tp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, players, err := h.TournamentService.RegisteredPlayers(c, tp.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": players})
}

// ExportRegistrations is the handler to download the sign-up list as CSV.
func (h *TournamentHandler) ExportRegistrations(c *gin.Context) {
	tp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, filename, err := h.TournamentService.ExportRegistrations(c, tp.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// RecordCheckIn is the handler to append a check-in or check-out event.
func (h *TournamentHandler) RecordCheckIn(c *gin.Context) {
	var bp filters.CheckInParams
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.TournamentService.RecordCheckIn(c, bp.DiscordID, models.CheckInAction(bp.Action)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"discord_id": bp.DiscordID, "action": bp.Action}})
}

// GetCheckedIn is the handler to list who is currently checked in.
func (h *TournamentHandler) GetCheckedIn(c *gin.Context) {
	checkedIn, err := h.TournamentService.CheckedIn(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": checkedIn})
}

// SetCheckInMessage is the handler to anchor the check-in message.
func (h *TournamentHandler) SetCheckInMessage(c *gin.Context) {
	tp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var bp filters.CheckInMessageParams
	if err := c.ShouldBindJSON(&bp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.TournamentService.SetCheckInMessage(c, tp.Query, bp.MessageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.NewTournamentInfo(tournament)})
}
