// Package tgbot is a thin Telegram frontend over the match service. The bot
// keeps no state of its own: every command reads or mutates the active
// season through the same service the web server uses.
package tgbot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goserg/foosrating/internal/config"
	"github.com/goserg/foosrating/internal/domain"
	"github.com/goserg/foosrating/internal/service"
)

type Bot struct {
	bot     *tgbotapi.BotAPI
	matches *service.Service
	log     *logrus.Entry

	// cancel func to stop the bot
	cancel func()
}

func New(l *logrus.Logger, matches *service.Service, cfg config.TgBot) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return nil, err
	}
	_, err = bot.GetMe()
	if err != nil {
		return nil, err
	}
	return &Bot{
		bot:     bot,
		matches: matches,
		log:     l.WithFields(map[string]interface{}{"from": "tgbot"}),
	}, nil
}

const helpText = `Доступные команды:
/top - десятка лучших
/games - последние игры
/game жо жз чо чз счет:счет - записать игру (нападение и защита желтых, потом черных)
/info имя - информация об игроке
/help - эта справка`

func (b *Bot) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
			switch update.Message.Command() {
			case "help", "start":
				msg.Text = helpText
			case "top":
				msg.Text = b.processTop(ctx)
			case "games":
				msg.Text = b.processGames(ctx)
			case "game":
				msg.Text = b.processAddGame(ctx, update.Message.CommandArguments())
			case "info":
				msg.Text = b.processInfo(ctx, update.Message.CommandArguments())
			default:
				msg.Text = "Неизвестная команда, /help покажет справку"
			}
			if _, err := b.bot.Send(msg); err != nil {
				b.log.WithError(err).Error("can't send message")
				return
			}
		}
	}
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

func (b *Bot) processTop(ctx context.Context) string {
	season, err := b.matches.ActiveSeason(ctx)
	if err != nil {
		b.log.WithError(err).Error("can't get active season")
		return "Неожиданная ошибка"
	}
	rows, err := b.matches.Leaderboard(ctx, season.ID)
	if err != nil {
		b.log.WithError(err).Error("can't get leaderboard")
		return "Неожиданная ошибка"
	}
	if len(rows) == 0 {
		return "Пока никто не играл"
	}
	var buffer strings.Builder
	for i, row := range rows {
		if i > 9 {
			break
		}
		buffer.WriteString(prettifyRank(row.Rank))
		buffer.WriteString(". ")
		buffer.WriteString(row.Player.Name)
		buffer.WriteString(" (")
		buffer.WriteString(strconv.FormatFloat(row.Rating, 'f', 0, 64))
		buffer.WriteString(")")
		if row.Probationary {
			buffer.WriteString(" *калибровка*")
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// processGames prints the ten most recent games, newest first.
func (b *Bot) processGames(ctx context.Context) string {
	season, err := b.matches.ActiveSeason(ctx)
	if err != nil {
		b.log.WithError(err).Error("can't get active season")
		return "Неожиданная ошибка"
	}
	games, err := b.matches.MatchHistory(ctx, season.ID)
	if err != nil {
		b.log.WithError(err).Error("can't get match history")
		return "Неожиданная ошибка"
	}
	if len(games) == 0 {
		return "Пока никто не играл"
	}
	var buffer strings.Builder
	for i, g := range games {
		if i > 9 {
			break
		}
		buffer.WriteString(g.Game.Day.Format("02.01"))
		buffer.WriteString(" ")
		buffer.WriteString(g.YellowOffense.Player.Name)
		buffer.WriteString("/")
		buffer.WriteString(g.YellowDefense.Player.Name)
		buffer.WriteString(" ")
		buffer.WriteString(strconv.Itoa(g.Game.YellowScore))
		buffer.WriteString(":")
		buffer.WriteString(strconv.Itoa(g.Game.BlackScore))
		buffer.WriteString(" ")
		buffer.WriteString(g.BlackOffense.Player.Name)
		buffer.WriteString("/")
		buffer.WriteString(g.BlackDefense.Player.Name)
		buffer.WriteString("\n")
	}
	return buffer.String()
}

const gameArgCount = 5

// processAddGame records a game from "жо жз чо чз 10:4" style arguments:
// four player names in slot order and the yellow:black score.
func (b *Bot) processAddGame(ctx context.Context, arguments string) string {
	fields := strings.Fields(arguments)
	if len(fields) != gameArgCount {
		return `Неверный запрос. Пример: "/game вася петя коля дима 10:4"`
	}
	season, err := b.matches.ActiveSeason(ctx)
	if err != nil {
		b.log.WithError(err).Error("can't get active season")
		return "Неожиданная ошибка"
	}
	g := domain.Game{Day: time.Now().UTC()}
	for i, dst := range []*uuid.UUID{&g.YellowOffense, &g.YellowDefense, &g.BlackOffense, &g.BlackDefense} {
		player, err := b.matches.GetPlayerByName(ctx, fields[i])
		if err != nil {
			return fields[i] + " не найден"
		}
		*dst = player.ID
	}
	score := strings.Split(fields[4], ":")
	if len(score) != 2 {
		return "Счет должен быть в формате 10:4"
	}
	g.YellowScore, err = strconv.Atoi(score[0])
	if err != nil {
		return "Счет должен быть в формате 10:4"
	}
	g.BlackScore, err = strconv.Atoi(score[1])
	if err != nil {
		return "Счет должен быть в формате 10:4"
	}
	stored, err := b.matches.AddGame(ctx, season.ID, g)
	if err != nil {
		return "Не получилось записать игру: " + err.Error()
	}
	return "Игра записана на " + stored.Day.Format("02.01.2006")
}

func (b *Bot) processInfo(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) < 1 {
		return "Укажите имя"
	}
	season, err := b.matches.ActiveSeason(ctx)
	if err != nil {
		b.log.WithError(err).Error("can't get active season")
		return "Неожиданная ошибка"
	}
	player, err := b.matches.GetPlayerByName(ctx, fields[0])
	if err != nil {
		return fields[0] + " не найден"
	}
	data, err := b.matches.PlayerData(ctx, season.ID, player.ID)
	if err != nil {
		b.log.WithError(err).Error("can't get player data")
		return "Неожиданная ошибка"
	}
	return printPlayer(player, data.Rating)
}

func printPlayer(player domain.Player, row domain.PlayerRating) string {
	var buf strings.Builder
	buf.WriteString("Имя: ")
	buf.WriteString(player.Name)
	buf.WriteString("\n")
	if row.GamesPlayed == 0 {
		buf.WriteString("Еще не играл")
		return buf.String()
	}
	buf.WriteString("Место в рейтинге: ")
	buf.WriteString(prettifyRank(row.Rank))
	buf.WriteString("\n")
	buf.WriteString("Рейтинг: ")
	buf.WriteString(strconv.FormatFloat(row.Rating, 'f', 0, 64))
	buf.WriteString("\n")
	buf.WriteString("Сыграно игр: ")
	buf.WriteString(strconv.Itoa(row.GamesPlayed))
	buf.WriteString(", побед: ")
	buf.WriteString(strconv.Itoa(row.Wins))
	buf.WriteString("\n")
	buf.WriteString("Зарегистрирован: ")
	buf.WriteString(player.RegisteredAt.Format(time.RFC1123))
	return buf.String()
}

func prettifyRank(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return strconv.Itoa(rank)
}
