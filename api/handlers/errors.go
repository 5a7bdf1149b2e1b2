package handlers

import (
	"errors"
	"net/http"

	playerservice "uchelper/api/services/player"
	tournamentservice "uchelper/api/services/tournament"
	"uchelper/pkg/registration"
	"uchelper/pkg/tetrio"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP surface. Rejections
// carry a stable reason identifier next to the human-readable message.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, playerservice.ErrNotFound) ||
		errors.Is(err, tournamentservice.ErrNotFound) ||
		errors.Is(err, tetrio.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if errors.Is(err, playerservice.ErrAlreadyLinked) ||
		errors.Is(err, playerservice.ErrDuplicateDiscordEntry) ||
		errors.Is(err, playerservice.ErrDuplicateTetrioEntry) ||
		errors.Is(err, tournamentservice.ErrDuplicateName) ||
		errors.Is(err, registration.ErrAlreadyRegistered) ||
		errors.Is(err, playerservice.ErrSyncInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if reason := rejectionReason(err); reason != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "reason": reason})
		return
	}

	var missing *registration.MissingArgumentError
	if errors.As(err, &missing) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errors.Is(err, playerservice.ErrExternalFetch) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// rejectionReason returns the identifier the front end switches on, or
// empty when the error is not a precondition or eligibility rejection.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, registration.ErrNoTournamentActive):
		return "no_tournament_active"
	case errors.Is(err, registration.ErrSnapshotMissing):
		return "snapshot_missing"
	case errors.Is(err, registration.ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, playerservice.ErrFieldNotSet):
		return "not_linked"
	}

	var unranked *registration.UnrankedError
	if errors.As(err, &unranked) {
		return "unranked_on_announcement"
	}

	var announcementRank *registration.AnnouncementRankError
	if errors.As(err, &announcementRank) {
		return "announcement_rank_too_high"
	}

	var games *registration.GamesError
	if errors.As(err, &games) {
		return "not_enough_games"
	}

	var deviation *registration.DeviationError
	if errors.As(err, &deviation) {
		return "rd_too_high"
	}

	var currentRank *registration.CurrentRankError
	if errors.As(err, &currentRank) {
		return "current_rank_too_high"
	}

	return ""
}
