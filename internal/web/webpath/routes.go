package webpath

const (
	Signin  = "/signin"
	Signup  = "/signup"
	Signout = "/signout"
	Home    = "/"

	Api             = "/api"
	ApiHome         = Api + Home
	ApiMatchesList  = Api + "/matches-list"
	ApiNewMatch     = Api + "/matches"
	ApiEditMatch    = Api + "/matches/:id/edit"
	ApiDeleteMatch  = Api + "/matches/:id/delete"
	ApiMoveMatch    = Api + "/matches/:id/move"
	ApiGetPlayers   = Api + "/players/:id"
	ApiNewPlayer    = Api + "/players"
	ApiTimeSeries   = Api + "/timeseries"
	ApiTimeSeriesJS = Api + "/timeseries.json"
	ApiExport       = Api + "/export"
	ApiImport       = Api + "/import"
	ApiSeasons      = Api + "/seasons"
)

func Path() map[string]string {
	return map[string]string{
		"SignUp":        Signup,
		"SignIn":        Signin,
		"SignOut":       Signout,
		"Home":          Home,
		"Api":           Api,
		"ApiHome":       ApiHome,
		"ApiNewMatch":   ApiNewMatch,
		"ApiMatches":    ApiMatchesList,
		"ApiNewPlayer":  ApiNewPlayer,
		"ApiTimeSeries": ApiTimeSeries,
		"ApiExport":     ApiExport,
		"ApiImport":     ApiImport,
		"ApiSeasons":    ApiSeasons,
	}
}
