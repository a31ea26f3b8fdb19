package sel

const (
	Logo = ".brand-logo"

	NewPlayerFormName   = "#new-player-form-name"
	NewPlayerFormSubmit = "#new-player-form-submit"

	NewMatchFormYellowOffense = "#new-match-form-yellow-offense"
	NewMatchFormYellowDefense = "#new-match-form-yellow-defense"
	NewMatchFormYellowScore   = "#new-match-form-yellow-score"
	NewMatchFormBlackOffense  = "#new-match-form-black-offense"
	NewMatchFormBlackDefense  = "#new-match-form-black-defense"
	NewMatchFormBlackScore    = "#new-match-form-black-score"
	NewMatchFormSubmit        = "#new-match-form-submit"

	PlayerListRow     = "#player-list-row"
	PlayerListRowName = "#player-list-row-name"
	PlayerListRowLink = PlayerListRow + " a"

	MatchListRow      = "#match-list-row"
	MatchListRowScore = "#match-list-row-score"

	SignInFormUsername = "#username-field"
	SignInFormPass     = "#password-field"
	SignInFormSubmit   = "#signin-form-submit"
)
