package apps

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/menus"
	"github.com/louisuk-data/logicaf1/pkg/pubsub"
	"github.com/louisuk-data/logicaf1/pkg/settings"
)

const (
	menuStart        = "/start"
	menuMenu         = "/menu"
	buttonQualifying = "Qualifying"
	buttonRaces      = "Races"
	buttonSeason     = "Season"
	buttonAlerts     = "Alerts"
	appName          = "menu"
)

var (
	menuKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonQualifying),
			tgbotapi.NewKeyboardButton(buttonRaces),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonSeason),
			tgbotapi.NewKeyboardButton(buttonAlerts),
		),
	)
)

type menuer struct{}

func (m menuer) Menu() tgbotapi.ReplyKeyboardMarkup {
	return menuKeyboard
}

type MainApp struct {
	bot       *tgbotapi.BotAPI
	accepters []Accepter
	pubsubMgr *pubsub.PubSub
}

func NewMainApp(ctx context.Context, bot *tgbotapi.BotAPI, store *laps.Store, settingsMgr *settings.Manager, pubsubMgr *pubsub.PubSub) *MainApp {
	qualyAppMenu := menus.NewApplicationMenu(buttonQualifying, appName, menuer{})
	qualyApp := NewQualifyingApp(bot, qualyAppMenu, store)

	raceAppMenu := menus.NewApplicationMenu(buttonRaces, appName, menuer{})
	raceApp := NewRaceApp(bot, raceAppMenu, store)

	seasonAppMenu := menus.NewApplicationMenu(buttonSeason, appName, menuer{})
	seasonApp := NewSeasonApp(bot, seasonAppMenu, store)

	alertsAppMenu := menus.NewApplicationMenu(buttonAlerts, appName, menuer{})
	alertsApp := NewAlertsApp(bot, alertsAppMenu, settingsMgr)

	accepters := []Accepter{qualyApp, raceApp, seasonApp, alertsApp}

	return &MainApp{
		bot:       bot,
		accepters: accepters,
		pubsubMgr: pubsubMgr,
	}
}

func (m *MainApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == menuStart {
		return true, m.renderStart()
	} else if command == menuMenu {
		return true, m.renderMenu()
	}
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptCommand(command)
		if accept {
			return true, handler
		}
	}

	return false, nil
}

func (m *MainApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptCallback(query)
		if accept {
			return true, handler
		}
	}

	return false, nil
}

func (m *MainApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptButton(button)
		if accept {
			return true, handler
		}
	}
	return false, nil
}

func (m *MainApp) renderStart() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Hi, I'm the lap records bot. I track qualifying gaps, race classifications and the championship standings.\n\n"
		message += "You can use the following command:\n\n"
		message += fmt.Sprintf("%s - Show the bot menu\n", menuMenu)
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = menuKeyboard
		_, err := m.bot.Send(msg)
		return err
	}
}

func (m *MainApp) renderMenu() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Bot menu.\n\n"
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = menuKeyboard
		_, err := m.bot.Send(msg)
		return err
	}
}
