package web

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/gamelog"
	"github.com/goserg/foosrating/internal/normalize"
)

const dayFormat = "2006-01-02"

var userNameRegexp = regexp.MustCompile(`^[A-Za-z]\w+$`)

type createGameRequest struct {
	yellowOffense string
	yellowDefense string
	blackOffense  string
	blackDefense  string
	yellowScore   int
	blackScore    int
	day           time.Time
}

// parseIDParam reads the :id route parameter. A malformed id is a caller
// error, not a server one.
func parseIDParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad id %q", domain.ErrValidation, ctx.Params("id"))
	}
	return id, nil
}

func parseCreateGameRequest(ctx *fiber.Ctx) (createGameRequest, error) {
	req := createGameRequest{
		yellowOffense: ctx.FormValue("yellow-offense", ""),
		yellowDefense: ctx.FormValue("yellow-defense", ""),
		blackOffense:  ctx.FormValue("black-offense", ""),
		blackDefense:  ctx.FormValue("black-defense", ""),
	}
	var err error
	req.yellowScore, err = parseScore(ctx, "yellow-score", err)
	req.blackScore, err = parseScore(ctx, "black-score", err)
	req.day, err = parseDay(ctx, err)
	err = errors.Join(err, req.validate())
	if err != nil {
		return createGameRequest{}, err
	}
	return req, nil
}

func parseScore(ctx *fiber.Ctx, field string, err error) (int, error) {
	raw := ctx.FormValue(field, "")
	score, parseErr := strconv.Atoi(raw)
	if parseErr != nil {
		return 0, errors.Join(err, errors.New("счет должен быть целым числом"))
	}
	if score < 0 {
		return 0, errors.Join(err, errors.New("счет не может быть отрицательным"))
	}
	return score, err
}

func parseDay(ctx *fiber.Ctx, err error) (time.Time, error) {
	raw := ctx.FormValue("date", "")
	if raw == "" {
		return time.Now().UTC(), err
	}
	day, parseErr := time.Parse(dayFormat, raw)
	if parseErr != nil {
		return time.Time{}, errors.Join(err, errors.New("дата должна быть в формате ГГГГ-ММ-ДД"))
	}
	return day, err
}

func (c createGameRequest) validate() error {
	var err error
	seen := make(map[string]bool, 4)
	for _, name := range []string{c.yellowOffense, c.yellowDefense, c.blackOffense, c.blackDefense} {
		norm := normalize.Name(name)
		if norm == "" {
			err = errors.Join(err, errors.New("все четыре игрока должны быть указаны"))
			continue
		}
		if seen[norm] {
			err = errors.Join(err, errors.New("игрок не может играть на двух позициях: "+name))
		}
		seen[norm] = true
	}
	if c.yellowScore == 0 && c.blackScore == 0 {
		err = errors.Join(err, errors.New("счет 0:0 не является результатом игры"))
	} else if c.yellowScore == c.blackScore {
		err = errors.Join(err, errors.New("ничьи не поддерживаются"))
	}
	return err
}

type credentialsRequest struct {
	name     string
	password string
}

func parseSignUpRequest(ctx *fiber.Ctx) (credentialsRequest, error) {
	req, err := parseSignInRequest(ctx)
	if ctx.FormValue("password-repeat", "") != req.password {
		err = errors.Join(err, errors.New("пароль не совпадает с подтверждением"))
	}
	if err != nil {
		return credentialsRequest{}, err
	}
	return req, nil
}

func parseSignInRequest(ctx *fiber.Ctx) (credentialsRequest, error) {
	var err error
	name := ctx.FormValue("username", "")
	err = errors.Join(err, validateUserName(name))
	password := ctx.FormValue("password", "")
	if password == "" {
		err = errors.Join(err, errors.New("пароль пользователя не должен быть пустым"))
	}
	if err != nil {
		return credentialsRequest{}, err
	}
	return credentialsRequest{
		name:     name,
		password: password,
	}, nil
}

func validateUserName(name string) error {
	if name == "" {
		return errors.New("имя пользователя не должно быть пустым")
	}
	if !userNameRegexp.MatchString(name) {
		return errors.New("имя пользователя должно начинаться с латинской буквы и содержать только латинские буквы, цифры и знаки подчеркивания")
	}
	return nil
}

type moveMatchRequest struct {
	direction gamelog.Direction
}

func parseMoveMatchRequest(ctx *fiber.Ctx) (moveMatchRequest, error) {
	switch ctx.FormValue("direction", "") {
	case "up":
		return moveMatchRequest{direction: gamelog.Up}, nil
	case "down":
		return moveMatchRequest{direction: gamelog.Down}, nil
	}
	return moveMatchRequest{}, errors.New("направление должно быть up или down")
}
