package apps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/louisuk-data/logicaf1/pkg/menus"
	"github.com/louisuk-data/logicaf1/pkg/settings"
)

const (
	SubcommandAlerts = "alerts"

	inlineKeyboardQualy = "Qualifying"
)

// AlertsApp lets a user toggle per-session-type notifications. Users
// are keyed by chat id since the bot only talks in private chats.
type AlertsApp struct {
	bot          *tgbotapi.BotAPI
	appMenu      menus.ApplicationMenu
	settingsMgr  *settings.Manager
	menuKeyboard tgbotapi.ReplyKeyboardMarkup
}

func NewAlertsApp(bot *tgbotapi.BotAPI, appMenu menus.ApplicationMenu, settingsMgr *settings.Manager) *AlertsApp {
	menuKeyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(appMenu.ButtonBackTo()),
		),
	)

	return &AlertsApp{
		bot:          bot,
		appMenu:      appMenu,
		settingsMgr:  settingsMgr,
		menuKeyboard: menuKeyboard,
	}
}

func (aa *AlertsApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	return false, nil
}

func (aa *AlertsApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] != SubcommandAlerts || len(data) != 2 {
		return false, nil
	}
	sessionType := data[1]
	return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		chatId := query.Message.Chat.ID
		userID := strconv.FormatInt(chatId, 10)
		name := query.From.UserName
		if name == "" {
			name = query.From.FirstName
		}
		err := aa.settingsMgr.ToggleNotification(userID, name, userID, sessionType)
		if err != nil {
			return err
		}
		return aa.sendStatus(chatId, &query.Message.MessageID)
	}
}

func (aa *AlertsApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == aa.appMenu.Name {
		return true, func(ctx context.Context, chatId int64) error {
			return aa.sendStatus(chatId, nil)
		}
	} else if button == aa.appMenu.ButtonBackTo() {
		return true, func(ctx context.Context, chatId int64) error {
			msg := tgbotapi.NewMessage(chatId, "OK")
			msg.ReplyMarkup = aa.appMenu.PrevMenu()
			_, err := aa.bot.Send(msg)
			return err
		}
	}
	return false, nil
}

func (aa *AlertsApp) sendStatus(chatId int64, messageId *int) error {
	n, err := aa.settingsMgr.ListNotifications(strconv.FormatInt(chatId, 10))
	if err != nil {
		return err
	}

	text := "Tap a session type to toggle its alert:\n\n" + n.String()
	keyboard := aa.inlineKeyboard(n)
	if messageId == nil {
		msg := tgbotapi.NewMessage(chatId, text)
		msg.ReplyMarkup = keyboard
		_, err = aa.bot.Send(msg)
		return err
	}
	msg := tgbotapi.NewEditMessageText(chatId, *messageId, text)
	msg.ReplyMarkup = &keyboard
	_, err = aa.bot.Send(msg)
	return err
}

func (aa *AlertsApp) inlineKeyboard(n settings.Notifications) tgbotapi.InlineKeyboardMarkup {
	data := func(sessionType string) string {
		return fmt.Sprintf("%s:%s", SubcommandAlerts, sessionType)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardQualy+" "+n.QualifyingSymbol(), data(settings.Qualifying)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardSprint+" "+n.SprintSymbol(), data(settings.Sprint)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardRace+" "+n.RaceSymbol(), data(settings.Race)),
		),
	)
}
