package repositories

import (
	"testing"
	"time"

	"uchelper/pkg/database/models"
	"uchelper/pkg/tetrio"
)

var fixedDate = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func float(v float64) *float64 {
	return &v
}

func normalizePlayerTimes(players ...*models.PlayerEntry) {
	for _, p := range players {
		if p == nil {
			continue
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		if p.FetchedAt != nil {
			utc := p.FetchedAt.UTC()
			p.FetchedAt = &utc
		}
		if p.LinkedAt != nil {
			utc := p.LinkedAt.UTC()
			p.LinkedAt = &utc
		}
	}
}

func getPlayerByTetrioIDExpectedResult(t *testing.T, testName string) *models.PlayerEntry {
	t.Helper()

	switch testName {
	case "existingplayer":
		return getUnlinkedPlayer()
	}

	return nil
}

func getPlayerByUsernameExpectedResult(t *testing.T, testName string) *models.PlayerEntry {
	t.Helper()

	switch testName {
	case "lowercasequery", "uppercasequery", "paddedquery":
		return getLinkedPlayer()
	}

	return nil
}

func getPlayerByDiscordExpectedResult(t *testing.T, testName string) *models.PlayerEntry {
	t.Helper()

	switch testName {
	case "linkedplayer":
		return getLinkedPlayer()
	}

	return nil
}

func getLinkedPlayer() *models.PlayerEntry {
	discordID := "155149108183695360"
	country := "US"
	return &models.PlayerEntry{
		TetrioID:    "5e331f40a0d43328dcb3d293",
		Username:    "hypercubed",
		DiscordID:   &discordID,
		LinkedAt:    &fixedDate,
		Rank:        tetrio.RankSS,
		Rating:      23411.4,
		Glicko:      float(24032.2),
		RD:          float(60.1),
		GamesPlayed: 2861,
		GamesWon:    1702,
		APM:         float(68.3),
		PPS:         float(2.8),
		VS:          float(139.6),
		Country:     &country,
		Supporter:   true,
		Verified:    true,
		HighestRank: tetrio.RankSS,
		FetchedAt:   &fixedDate,
		CreatedAt:   fixedDate,
		UpdatedAt:   fixedDate,
	}
}

func getUnlinkedPlayer() *models.PlayerEntry {
	return &models.PlayerEntry{
		TetrioID:    "61ab34cc10fe2b78e4d97730",
		Username:    "tetraquake",
		Rank:        tetrio.RankB,
		Rating:      12011.3,
		GamesPlayed: 44,
		GamesWon:    20,
		HighestRank: tetrio.RankB,
		CreatedAt:   fixedDate,
		UpdatedAt:   fixedDate,
	}
}
