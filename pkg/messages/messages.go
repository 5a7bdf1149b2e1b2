package messages

const (
	BadStatusCodeMsg    = "API returned status code %d on URL %s"
	CouldNotFindPlayer  = "couldn't find the specified player"
	FailedToParseMsg    = "failed to parse API response"
	RequestFailedMsg    = "API request failed on URL %s"
	SyncInProgress      = "a leaderboard sync is already running, please wait"
	MissingQueryMsg     = "either a discord id or a username must be provided"
	TournamentNotFound  = "couldn't find the specified tournament"
	NoActiveTournament  = "there is no tournament ongoing"
	AlreadyRegisteredIn = "user is already registered"
	NotRegisteredIn     = "user is not registered"
)
