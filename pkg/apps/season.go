package apps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/menus"
	"github.com/louisuk-data/logicaf1/pkg/standings"
)

const SubcommandSeason = "season"

// SeasonApp renders the championship standings table for a season.
type SeasonApp struct {
	bot          *tgbotapi.BotAPI
	appMenu      menus.ApplicationMenu
	store        *laps.Store
	menuKeyboard tgbotapi.ReplyKeyboardMarkup
}

func NewSeasonApp(bot *tgbotapi.BotAPI, appMenu menus.ApplicationMenu, store *laps.Store) *SeasonApp {
	menuKeyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(appMenu.ButtonBackTo()),
		),
	)

	return &SeasonApp{
		bot:          bot,
		appMenu:      appMenu,
		store:        store,
		menuKeyboard: menuKeyboard,
	}
}

func (sa *SeasonApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	return false, nil
}

func (sa *SeasonApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] != SubcommandSeason || len(data) != 2 {
		return false, nil
	}
	year, _ := strconv.Atoi(data[1])
	return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		return sa.sendStandings(query.Message.Chat.ID, &query.Message.MessageID, year)
	}
}

func (sa *SeasonApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == sa.appMenu.Name {
		return true, func(ctx context.Context, chatId int64) error {
			all, err := sa.store.LoadAll()
			if err != nil {
				return err
			}
			years := laps.Years(all)
			if len(years) == 0 {
				msg := tgbotapi.NewMessage(chatId, "No season data available yet")
				_, err := sa.bot.Send(msg)
				return err
			}
			return sa.sendStandings(chatId, nil, years[0])
		}
	} else if button == sa.appMenu.ButtonBackTo() {
		return true, func(ctx context.Context, chatId int64) error {
			msg := tgbotapi.NewMessage(chatId, "OK")
			msg.ReplyMarkup = sa.appMenu.PrevMenu()
			_, err := sa.bot.Send(msg)
			return err
		}
	}
	return false, nil
}

func (sa *SeasonApp) sendStandings(chatId int64, messageId *int, year int) error {
	all, err := sa.store.LoadAll()
	if err != nil {
		return err
	}
	table := standings.SeasonStandings(laps.FilterYear(all, year))
	if len(table) == 0 {
		msg := tgbotapi.NewMessage(chatId, "No points recorded for that season")
		_, err := sa.bot.Send(msg)
		return err
	}

	body := seasonTable(table)
	title := fmt.Sprintf("Championship standings (%d)", year)
	keyboard := sa.inlineKeyboard(laps.Years(all))
	return sendOrEdit(sa.bot, chatId, messageId, codeBlock(title, body), keyboard)
}

func (sa *SeasonApp) inlineKeyboard(years []int) tgbotapi.InlineKeyboardMarkup {
	buttons := []tgbotapi.InlineKeyboardButton{}
	for _, year := range years {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(year),
			fmt.Sprintf("%s:%d", SubcommandSeason, year),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
}
