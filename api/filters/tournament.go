package filters

// URI params for the tournament endpoints.
type TournamentURIParams struct {
	Query string `uri:"query" binding:"required"`
}

// Body for the tournament creation route.
type TournamentCreateParams struct {
	Name      string  `json:"name" binding:"required"`
	Shorthand string  `json:"shorthand" binding:"required"`
	MaxRank   string  `json:"max_rank" binding:"required"`
	MaxRD     float64 `json:"max_rd" binding:"required"`
	MinGames  int64   `json:"min_games" binding:"required"`
}

// Body for the active tournament route.
// An empty query deactivates every tournament.
type TournamentSetActiveParams struct {
	Query string `json:"query"`
}

// Body for the registration route.
// Username is optional when the discord account is already linked.
type RegisterParams struct {
	DiscordID     string `json:"discord_id" binding:"required"`
	Username      string `json:"username"`
	StaffOverride bool   `json:"staff_override"`
}

// Body for the unregistration route.
type UnregisterParams struct {
	DiscordID string `json:"discord_id"`
	Username  string `json:"username"`
}

// Body for the check-in event route.
type CheckInParams struct {
	DiscordID string `json:"discord_id" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=add remove"`
}

// Body for the check-in message anchor route.
type CheckInMessageParams struct {
	MessageID string `json:"message_id" binding:"required"`
}
