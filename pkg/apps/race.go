package apps

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/menus"
	"github.com/louisuk-data/logicaf1/pkg/standings"
)

const (
	SubcommandRace = "race"

	inlineKeyboardRace   = "Race"
	inlineKeyboardSprint = "Sprint"

	symbolRace   = "🏁"
	symbolSprint = "⚡️"
)

var (
	commandRace   = regexp.MustCompile(`^\/r_(\d+)_(\d+)$`)
	commandSprint = regexp.MustCompile(`^\/s_(\d+)_(\d+)$`)
)

// RaceApp renders race and sprint classifications joined with the
// season points picture: per-round points, running total through the
// session and race time or gap to the winner.
type RaceApp struct {
	bot          *tgbotapi.BotAPI
	appMenu      menus.ApplicationMenu
	store        *laps.Store
	menuKeyboard tgbotapi.ReplyKeyboardMarkup
}

func NewRaceApp(bot *tgbotapi.BotAPI, appMenu menus.ApplicationMenu, store *laps.Store) *RaceApp {
	menuKeyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(appMenu.ButtonBackTo()),
		),
	)

	return &RaceApp{
		bot:          bot,
		appMenu:      appMenu,
		store:        store,
		menuKeyboard: menuKeyboard,
	}
}

func (ra *RaceApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	session := laps.SessionRace
	match := commandRace.FindStringSubmatch(command)
	if match == nil {
		match = commandSprint.FindStringSubmatch(command)
		session = laps.SessionSprint
	}
	if match == nil {
		return false, nil
	}
	year, _ := strconv.Atoi(match[1])
	round, _ := strconv.Atoi(match[2])
	return true, func(ctx context.Context, chatId int64) error {
		return ra.sendRaceTable(chatId, nil, year, round, session)
	}
}

func (ra *RaceApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] != SubcommandRace || len(data) != 4 {
		return false, nil
	}
	session := laps.SessionType(data[1])
	year, _ := strconv.Atoi(data[2])
	round, _ := strconv.Atoi(data[3])
	return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		return ra.sendRaceTable(query.Message.Chat.ID, &query.Message.MessageID, year, round, session)
	}
}

func (ra *RaceApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == ra.appMenu.Name {
		return true, ra.renderEventList()
	} else if button == ra.appMenu.ButtonBackTo() {
		return true, func(ctx context.Context, chatId int64) error {
			msg := tgbotapi.NewMessage(chatId, "OK")
			msg.ReplyMarkup = ra.appMenu.PrevMenu()
			_, err := ra.bot.Send(msg)
			return err
		}
	}
	return false, nil
}

func (ra *RaceApp) renderEventList() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		races, err := ra.store.Load(laps.SessionRace)
		if err != nil {
			return err
		}
		sprints, err := ra.store.Load(laps.SessionSprint)
		if err != nil {
			return err
		}
		years := laps.Years(append(append([]laps.Lap{}, races...), sprints...))
		if len(years) == 0 {
			msg := tgbotapi.NewMessage(chatId, "No race data available yet")
			_, err := ra.bot.Send(msg)
			return err
		}

		message := fmt.Sprintf("Pick a race (%d):\n\n", years[0])
		message += eventList(races, years[0], "r")
		if sprintList := eventList(sprints, years[0], "s"); sprintList != "" {
			message += "\nSprints:\n" + sprintList
		}
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = ra.menuKeyboard
		_, err = ra.bot.Send(msg)
		return err
	}
}

func (ra *RaceApp) sendRaceTable(chatId int64, messageId *int, year, round int, session laps.SessionType) error {
	rows, err := ra.store.Load(session)
	if err != nil {
		return err
	}
	sessionLaps := laps.FilterRound(rows, year, round, session)
	if len(sessionLaps) == 0 {
		msg := tgbotapi.NewMessage(chatId, "No laps recorded for that session")
		_, err := ra.bot.Send(msg)
		return err
	}
	event := sessionLaps[0].Event

	// Season totals need every points-scoring session of the year, not
	// just the one on display.
	all, err := ra.store.LoadAll()
	if err != nil {
		return err
	}
	totals := standings.TotalsAt(standings.SeasonTotals(laps.FilterYear(all, year)), round, session)

	results := standings.Classification(sessionLaps)
	body := raceTable(results, totals)
	title := fmt.Sprintf("%s — %s (%d)", session, event, year)

	keyboard := ra.inlineKeyboard(year, round)
	return sendOrEdit(ra.bot, chatId, messageId, codeBlock(title, body), keyboard)
}

func (ra *RaceApp) inlineKeyboard(year, round int) tgbotapi.InlineKeyboardMarkup {
	data := func(session laps.SessionType) string {
		return fmt.Sprintf("%s:%s:%d:%d", SubcommandRace, session, year, round)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardRace+" "+symbolRace, data(laps.SessionRace)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardSprint+" "+symbolSprint, data(laps.SessionSprint)),
		),
	)
}
