package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	authservice "github.com/goserg/foosrating/auth/service"
	authsqlite "github.com/goserg/foosrating/auth/storage/sqlite"
	"github.com/goserg/foosrating/internal/config"
	"github.com/goserg/foosrating/internal/logger"
	"github.com/goserg/foosrating/internal/service"
	"github.com/goserg/foosrating/internal/storage/sqlite"
	"github.com/goserg/foosrating/internal/tgbot"
	"github.com/goserg/foosrating/internal/web"
)

var (
	serverConfigPath string
	botConfigPath    string
)

func init() {
	flag.StringVar(&serverConfigPath, "server-config", "configs/server.toml", "path to server configs")
	flag.StringVar(&botConfigPath, "bot-config", "configs/bot.toml", "path to bot configs")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	// .env is optional, env vars win over toml either way.
	_ = godotenv.Load()

	cfg, err := config.New(serverConfigPath, botConfigPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	storage, err := sqlite.New(log, cfg.Server)
	if err != nil {
		return err
	}
	matchService := service.New(log, storage, storage, storage, cfg.Server.Rating)
	if _, err := matchService.EnsureActiveSeason(context.Background()); err != nil {
		return err
	}

	authStorage, err := authsqlite.New(log, cfg.Server)
	if err != nil {
		return err
	}
	authService, err := authservice.New(context.Background(), cfg.Server.Auth, authStorage)
	if err != nil {
		return err
	}

	if cfg.Server.TgBotEnabled {
		bot, err := tgbot.New(log, matchService, cfg.TgBot)
		if err != nil {
			return err
		}
		go bot.Run()
		defer bot.Stop()
	}

	server, err := web.New(log, matchService, cfg.Server, authService)
	if err != nil {
		return err
	}
	return server.Serve()
}
