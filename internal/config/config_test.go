package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/foosrating/internal/rating"
)

const serverToml = `
host = "127.0.0.1"
port = 8080
debug_mode = true
sqlite_file = "test.sqlite"

[rating]
default_method = "flat"
base_rating = 1000.0
probation_games = 5

[auth]
sqlite_file = "auth.sqlite"
token = "tok"
expiration = "12h"

[[auth.rules]]
name = "public"
path = '^/api'
method = ["GET"]
allow = ["*"]
`

const botToml = `
telegram_apitoken = "from-file"
`

func writeConfigs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	serverPath := filepath.Join(dir, "server.toml")
	require.NoError(t, os.WriteFile(serverPath, []byte(serverToml), 0o644))
	botPath := filepath.Join(dir, "bot.toml")
	require.NoError(t, os.WriteFile(botPath, []byte(botToml), 0o644))
	return serverPath, botPath
}

func TestNew(t *testing.T) {
	serverPath, botPath := writeConfigs(t)

	cfg, err := New(serverPath, botPath)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "flat", cfg.Server.Rating.DefaultMethod)
	assert.Equal(t, 1000.0, cfg.Server.Rating.BaseRating)
	assert.Equal(t, 5, cfg.Server.Rating.ProbationGames)
	assert.Equal(t, "from-file", cfg.TgBot.TelegramAPIToken)
	require.Len(t, cfg.Server.Auth.Rules, 1)
	assert.Equal(t, "public", cfg.Server.Auth.Rules[0].Name)
}

func TestNewDefaultsAndEnv(t *testing.T) {
	dir := t.TempDir()
	serverPath := filepath.Join(dir, "server.toml")
	require.NoError(t, os.WriteFile(serverPath, []byte("host = \"0.0.0.0\"\n"), 0o644))
	botPath := filepath.Join(dir, "bot.toml")
	require.NoError(t, os.WriteFile(botPath, []byte(""), 0o644))
	t.Setenv("TELEGRAM_APITOKEN", "from-env")
	t.Setenv("AUTH_PEPPER", "env-pepper")

	cfg, err := New(serverPath, botPath)
	require.NoError(t, err)
	assert.Equal(t, rating.MethodSigmoid, cfg.Server.Rating.DefaultMethod)
	assert.Equal(t, 500.0, cfg.Server.Rating.BaseRating)
	assert.Equal(t, 10, cfg.Server.Rating.ProbationGames)
	assert.Equal(t, "from-env", cfg.TgBot.TelegramAPIToken)
	assert.Equal(t, "env-pepper", cfg.Server.Auth.PasswordPepper)
}

func TestEngineConfig(t *testing.T) {
	r := Rating{DefaultMethod: "sigmoid", BaseRating: 500, ProbationGames: 10}
	cfg := r.EngineConfig("")
	assert.Equal(t, "sigmoid", cfg.Method)
	cfg = r.EngineConfig("flat")
	assert.Equal(t, "flat", cfg.Method)
	assert.Equal(t, 500.0, cfg.BaseRating)
}
