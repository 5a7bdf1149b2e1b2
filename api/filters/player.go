package filters

// URI params for the player endpoints.
type PlayerURIParams struct {
	Query string `uri:"query" binding:"required"`
}

// URI params for the discord lookup endpoint.
type PlayerDiscordURIParams struct {
	DiscordID string `uri:"discordID" binding:"required"`
}

// Query parameters for the player profile route.
type PlayerGetParams struct {
	Refresh bool `form:"refresh"`
}

// Body for the account link route.
type PlayerLinkParams struct {
	DiscordID string `json:"discord_id" binding:"required"`
	Username  string `json:"username" binding:"required"`
}

// Body for the account unlink route.
// Exactly one of the fields must be given.
type PlayerUnlinkParams struct {
	DiscordID string `json:"discord_id"`
	Username  string `json:"username"`
}
