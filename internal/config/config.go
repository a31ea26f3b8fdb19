package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/goserg/foosrating/internal/rating"
)

type Rating struct {
	// DefaultMethod is assigned to newly created seasons.
	DefaultMethod  string  `toml:"default_method"`
	BaseRating     float64 `toml:"base_rating"`
	ProbationGames int     `toml:"probation_games"`
}

func (r Rating) EngineConfig(method string) rating.Config {
	if method == "" {
		method = r.DefaultMethod
	}
	return rating.Config{
		Method:         method,
		BaseRating:     r.BaseRating,
		ProbationGames: r.ProbationGames,
	}
}

type Server struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Debug        bool   `toml:"debug_mode"`
	SqliteFile   string `toml:"sqlite_file"`
	TgBotEnabled bool   `toml:"tg_bot_enabled"`
	Rating       Rating `toml:"rating"`
	Auth         Auth   `toml:"auth"`
}

type Auth struct {
	SqliteFile     string `toml:"sqlite_file"`
	Token          string `toml:"token"`
	Expiration     string `toml:"expiration"`
	RootPassword   string `toml:"root_password"`
	PasswordPepper string `toml:"password_pepper"`
	Rules          []Rule `toml:"rules"`
}

type Rule struct {
	Name   string   `toml:"name"`
	Path   string   `toml:"path"`
	Method []string `toml:"method"`
	Allow  []string `toml:"allow"`
}

type TgBot struct {
	TelegramAPIToken string `toml:"telegram_apitoken"`
}

type Config struct {
	TgBot  TgBot
	Server Server
}

func New(serverPath, botPath string) (Config, error) {
	var serverCfg Server
	_, err := toml.DecodeFile(serverPath, &serverCfg)
	if err != nil {
		return Config{}, err
	}
	if serverCfg.Rating.DefaultMethod == "" {
		serverCfg.Rating.DefaultMethod = rating.MethodSigmoid
	}
	if serverCfg.Rating.BaseRating == 0 {
		serverCfg.Rating.BaseRating = 500
	}
	if serverCfg.Rating.ProbationGames == 0 {
		serverCfg.Rating.ProbationGames = 10
	}

	var tgBotCfg TgBot
	_, err = toml.DecodeFile(botPath, &tgBotCfg)
	if err != nil {
		return Config{}, err
	}
	if token := os.Getenv("TELEGRAM_APITOKEN"); token != "" {
		tgBotCfg.TelegramAPIToken = token
	}
	if pepper := os.Getenv("AUTH_PEPPER"); pepper != "" {
		serverCfg.Auth.PasswordPepper = pepper
	}

	return Config{
		TgBot:  tgBotCfg,
		Server: serverCfg,
	}, nil
}
