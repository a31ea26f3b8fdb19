package web

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	embedded "github.com/goserg/foosrating"
	authservice "github.com/goserg/foosrating/auth/service"
	"github.com/goserg/foosrating/auth/users"
	"github.com/goserg/foosrating/internal/config"
	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/service"
	"github.com/goserg/foosrating/internal/web/webpath"
)

type Server struct {
	auth    *authservice.Service
	matches *service.Service
	app     *fiber.App
	cfg     config.Server
	log     *logrus.Entry
}

func New(l *logrus.Logger, matches *service.Service, cfg config.Server, authService *authservice.Service) (*Server, error) {
	server := Server{
		matches: matches,
		auth:    authService,
		cfg:     cfg,
		log:     l.WithFields(map[string]interface{}{"from": "web"}),
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("FormatRating", formatRating)
	engine.AddFunc("FormatDelta", formatDelta)
	engine.AddFunc("FormatPercent", formatPercent)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: server.handleError,
	})
	app.Use(webpath.Api, func(c *fiber.Ctx) error {
		tokenCookie := c.Cookies("token")
		user, err := authService.Auth(c.Context(), tokenCookie, c.Method(), c.OriginalURL())
		if err != nil {
			switch {
			case errors.Is(err, authservice.ErrForbidden):
				c.Status(fiber.StatusForbidden)
			case errors.Is(err, authservice.ErrNotAuthorized):
				c.Status(fiber.StatusUnauthorized)
			default:
				c.Status(fiber.StatusInternalServerError)
			}
			return nil
		}
		c.Context().SetUserValue(userKey, user)
		return c.Next()
	})
	app.Get(webpath.Signin, server.HandleGetSignIn)
	app.Post(webpath.Signin, server.HandlePostSignIn)
	app.Get(webpath.Signup, server.HandleGetSignup)
	app.Post(webpath.Signup, server.HandlePostSignup)
	app.Get(webpath.Signout, server.HandleSignOut)
	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.Api)
	})

	app.Get(webpath.ApiHome, server.handleMain)
	app.Get(webpath.ApiMatchesList, server.handleMatches)
	app.Get(webpath.ApiNewMatch, server.handleCreateMatchGet)
	app.Post(webpath.ApiNewMatch, server.handleCreateMatchPost)
	app.Get(webpath.ApiEditMatch, server.handleEditMatchGet)
	app.Post(webpath.ApiEditMatch, server.handleEditMatchPost)
	app.Post(webpath.ApiDeleteMatch, server.handleDeleteMatch)
	app.Post(webpath.ApiMoveMatch, server.handleMoveMatch)
	app.Get(webpath.ApiGetPlayers, server.HandlePlayerInfo)
	app.Get(webpath.ApiNewPlayer, server.handleNewPlayerGet)
	app.Post(webpath.ApiNewPlayer, server.handleNewPlayerPost)
	app.Get(webpath.ApiTimeSeries, server.handleTimeSeries)
	app.Get(webpath.ApiTimeSeriesJS, server.handleTimeSeriesJSON)
	app.Get(webpath.ApiExport, server.handleExport)
	app.Post(webpath.ApiImport, server.handleImport)
	app.Get(webpath.ApiSeasons, server.handleSeasons)
	app.Post(webpath.ApiSeasons, server.handleNewSeason)
	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

const userKey = "user"

func userFromCtx(ctx *fiber.Ctx) users.User {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	return user
}

// handleError maps domain errors to statuses; everything else is a 500.
func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidMove):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	if status == fiber.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	return ctx.Status(status).SendString(err.Error())
}

func (s *Server) activeSeason(ctx *fiber.Ctx) (domain.Season, error) {
	return s.matches.ActiveSeason(ctx.Context())
}

func (s *Server) handleMain(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	rows, err := s.matches.Leaderboard(ctx.Context(), season.ID)
	if err != nil {
		return err
	}
	return ctx.Render("index", newData("Рейтинг", "rating").
		WithUser(userFromCtx(ctx)).
		With("Season", season).
		With("Players", rows), "layouts/main")
}

func (s *Server) handleMatches(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	matches, err := s.matches.MatchHistory(ctx.Context(), season.ID)
	if err != nil {
		return err
	}
	return ctx.Render("matches", newData("Список матчей", "matches").
		WithUser(userFromCtx(ctx)).
		With("Matches", matches), "layouts/main")
}

func (s *Server) matchFormData(ctx *fiber.Ctx, title string) (data, error) {
	players, err := s.matches.ListPlayers(ctx.Context())
	if err != nil {
		return data{}, err
	}
	return newData(title, "matches").
		WithUser(userFromCtx(ctx)).
		With("AllPlayers", players), nil
}

func (s *Server) handleCreateMatchGet(ctx *fiber.Ctx) error {
	d, err := s.matchFormData(ctx, "Добавить игру")
	if err != nil {
		return err
	}
	return ctx.Render("newMatch", d, "layouts/main")
}

func (s *Server) buildGame(ctx *fiber.Ctx, req createGameRequest) (domain.Game, error) {
	g := domain.Game{
		Day:         req.day,
		YellowScore: req.yellowScore,
		BlackScore:  req.blackScore,
	}
	slots := []struct {
		name string
		dst  *uuid.UUID
	}{
		{req.yellowOffense, &g.YellowOffense},
		{req.yellowDefense, &g.YellowDefense},
		{req.blackOffense, &g.BlackOffense},
		{req.blackDefense, &g.BlackDefense},
	}
	for _, slot := range slots {
		p, err := s.matches.GetPlayerByName(ctx.Context(), slot.name)
		if err != nil {
			return domain.Game{}, err
		}
		*slot.dst = p.ID
	}
	return g, nil
}

func (s *Server) handleCreateMatchPost(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	req, err := parseCreateGameRequest(ctx)
	if err == nil {
		var g domain.Game
		g, err = s.buildGame(ctx, req)
		if err == nil {
			_, err = s.matches.AddGame(ctx.Context(), season.ID, g)
		}
	}
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			d, dataErr := s.matchFormData(ctx, "Добавить игру")
			if dataErr != nil {
				return dataErr
			}
			return ctx.Status(fiber.StatusBadRequest).
				Render("newMatch", d.WithErrors(err), "layouts/main")
		}
		return err
	}
	return ctx.Redirect(webpath.ApiMatchesList)
}

func (s *Server) handleEditMatchGet(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return err
	}
	g, err := s.matches.GetGame(ctx.Context(), season.ID, id)
	if err != nil {
		return err
	}
	d, err := s.matchFormData(ctx, "Изменить игру")
	if err != nil {
		return err
	}
	names := make(map[string]string, 4)
	for slot, playerID := range map[string]uuid.UUID{
		"YellowOffense": g.YellowOffense,
		"YellowDefense": g.YellowDefense,
		"BlackOffense":  g.BlackOffense,
		"BlackDefense":  g.BlackDefense,
	} {
		p, err := s.matches.GetPlayer(ctx.Context(), playerID)
		if err != nil {
			return err
		}
		names[slot] = p.Name
	}
	return ctx.Render("editMatch", d.
		With("Match", g).
		With("Names", names).
		With("Day", g.Day.Format(dayFormat)), "layouts/main")
}

func (s *Server) handleEditMatchPost(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return err
	}
	req, err := parseCreateGameRequest(ctx)
	if err != nil {
		d, dataErr := s.matchFormData(ctx, "Изменить игру")
		if dataErr != nil {
			return dataErr
		}
		return ctx.Status(fiber.StatusBadRequest).
			Render("editMatch", d.WithErrors(err), "layouts/main")
	}
	g, err := s.buildGame(ctx, req)
	if err != nil {
		return err
	}
	g.ID = id
	if _, err := s.matches.EditGame(ctx.Context(), season.ID, g); err != nil {
		return err
	}
	return ctx.Redirect(webpath.ApiMatchesList)
}

func (s *Server) handleDeleteMatch(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return err
	}
	if err := s.matches.DeleteGame(ctx.Context(), season.ID, id); err != nil {
		return err
	}
	return ctx.Redirect(webpath.ApiMatchesList)
}

func (s *Server) handleMoveMatch(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return err
	}
	req, err := parseMoveMatchRequest(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if err := s.matches.MoveGame(ctx.Context(), season.ID, id, req.direction); err != nil {
		return err
	}
	return ctx.Redirect(webpath.ApiMatchesList)
}

func (s *Server) HandlePlayerInfo(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	id, err := parseIDParam(ctx)
	if err != nil {
		return err
	}
	playerData, err := s.matches.PlayerData(ctx.Context(), season.ID, id)
	if err != nil {
		return err
	}
	return ctx.Render("playerCard", newData(playerData.Rating.Player.Name, "playerCard").
		WithUser(userFromCtx(ctx)).
		With("Data", playerData), "layouts/main")
}

func (s *Server) handleTimeSeries(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	players, err := s.matches.ListPlayers(ctx.Context())
	if err != nil {
		return err
	}
	points, err := s.matches.TimeSeries(ctx.Context(), season.ID)
	if err != nil {
		return err
	}
	return ctx.Render("timeseries", newData("График рейтинга", "timeseries").
		WithUser(userFromCtx(ctx)).
		With("Players", players).
		With("Points", points), "layouts/main")
}

func (s *Server) handleTimeSeriesJSON(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	points, err := s.matches.TimeSeries(ctx.Context(), season.ID)
	if err != nil {
		return err
	}
	type point struct {
		Date    string               `json:"date"`
		Ratings map[uuid.UUID]float64 `json:"ratings"`
		Deltas  map[uuid.UUID]float64 `json:"deltas"`
	}
	out := make([]point, 0, len(points))
	for _, p := range points {
		out = append(out, point{
			Date:    p.Date.Format(dayFormat),
			Ratings: p.Ratings,
			Deltas:  p.Deltas,
		})
	}
	return ctx.JSON(out)
}

func (s *Server) handleExport(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	payload, err := s.matches.Export(ctx.Context(), season.ID)
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="foosrating-export.json"`)
	return ctx.Send(payload)
}

func (s *Server) handleImport(ctx *fiber.Ctx) error {
	season, err := s.activeSeason(ctx)
	if err != nil {
		return err
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).SendString("файл не выбран")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	payload, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	if err := s.matches.Import(ctx.Context(), season.ID, payload); err != nil {
		return err
	}
	return ctx.Redirect(webpath.ApiHome)
}

func (s *Server) handleSeasons(ctx *fiber.Ctx) error {
	seasons, err := s.matches.Seasons(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("seasons", newData("Сезоны", "seasons").
		WithUser(userFromCtx(ctx)).
		With("Seasons", seasons), "layouts/main")
}

// handleNewSeason opens a fresh season; the current one is closed for new
// games but keeps its history.
func (s *Server) handleNewSeason(ctx *fiber.Ctx) error {
	name := ctx.FormValue("name", "")
	method := ctx.FormValue("method", "")
	_, err := s.matches.StartSeason(ctx.Context(), name, method)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			seasons, listErr := s.matches.Seasons(ctx.Context())
			if listErr != nil {
				return listErr
			}
			return ctx.Status(fiber.StatusBadRequest).
				Render("seasons", newData("Сезоны", "seasons").
					WithUser(userFromCtx(ctx)).
					With("Seasons", seasons).
					WithErrors(err), "layouts/main")
		}
		return err
	}
	return ctx.Redirect(webpath.ApiSeasons)
}

func (s *Server) HandleGetSignIn(ctx *fiber.Ctx) error {
	return ctx.Render("signin", newData("Войти", ""), "layouts/main")
}

func (s *Server) HandlePostSignIn(ctx *fiber.Ctx) error {
	req, err := parseSignInRequest(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).
			Render("signin", newData("Войти", "").WithErrors(err), "layouts/main")
	}
	user, err := s.auth.Login(ctx.Context(), req.name, req.password)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).
			Render("signin", newData("Войти", "").
				WithErrors(errors.New("неверное имя пользователя или пароль")), "layouts/main")
	}
	cookie, err := s.auth.GenerateJWTCookie(user.ID, s.cfg.Host)
	if err != nil {
		return err
	}
	ctx.Cookie(cookie)
	return ctx.Redirect(webpath.ApiHome)
}

func (s *Server) HandleGetSignup(ctx *fiber.Ctx) error {
	return ctx.Render("signup", newData("Зарегистрироваться", ""), "layouts/main")
}

func (s *Server) HandlePostSignup(ctx *fiber.Ctx) error {
	req, err := parseSignUpRequest(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).
			Render("signup", newData("Зарегистрироваться", "").WithErrors(err), "layouts/main")
	}
	if err := s.auth.SignUp(ctx.Context(), req.name, req.password); err != nil {
		return err
	}
	return ctx.Redirect(webpath.Signin)
}

func (s *Server) HandleSignOut(ctx *fiber.Ctx) error {
	ctx.ClearCookie("token")
	return ctx.Redirect(webpath.ApiHome)
}

func (s *Server) handleNewPlayerGet(ctx *fiber.Ctx) error {
	return ctx.Render("newPlayer", newData("Добавить игрока", "").
		WithUser(userFromCtx(ctx)), "layouts/main")
}

func (s *Server) handleNewPlayerPost(ctx *fiber.Ctx) error {
	name := ctx.FormValue("name", "")
	_, err := s.matches.CreatePlayer(ctx.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return ctx.Status(fiber.StatusBadRequest).
				Render("newPlayer", newData("Добавить игрока", "").
					WithUser(userFromCtx(ctx)).
					WithErrors(err), "layouts/main")
		}
		return err
	}
	return ctx.Redirect(webpath.ApiHome)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 0, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 0, 64) + "%"
}

func formatDelta(d float64) string {
	s := strconv.FormatFloat(d, 'f', 1, 64)
	if d > 0 {
		return "+" + s
	}
	return s
}
