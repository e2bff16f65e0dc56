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
	SubcommandQualy = "qualy"

	modePole     = "pole"
	modeTeammate = "teammate"
	modeSectors  = "sectors"

	sortClassification = "class"
	sortBiggest        = "biggest"

	inlineKeyboardPole     = "Gap to Pole"
	inlineKeyboardTeammate = "Teammate"
	inlineKeyboardBiggest  = "Biggest Gap"
	inlineKeyboardSectors  = "Sectors"

	symbolTimes   = "⏱"
	symbolSectors = "🔂"
	symbolTeam    = "🏎️"
)

var commandQualy = regexp.MustCompile(`^\/q_(\d+)_(\d+)$`)

// QualifyingApp renders the qualifying gap dashboards: best lap per
// driver with gap to pole, or intra-team gaps with either ordering.
type QualifyingApp struct {
	bot          *tgbotapi.BotAPI
	appMenu      menus.ApplicationMenu
	store        *laps.Store
	menuKeyboard tgbotapi.ReplyKeyboardMarkup
}

func NewQualifyingApp(bot *tgbotapi.BotAPI, appMenu menus.ApplicationMenu, store *laps.Store) *QualifyingApp {
	menuKeyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(appMenu.ButtonBackTo()),
		),
	)

	return &QualifyingApp{
		bot:          bot,
		appMenu:      appMenu,
		store:        store,
		menuKeyboard: menuKeyboard,
	}
}

func (qa *QualifyingApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if commandQualy.MatchString(command) {
		match := commandQualy.FindStringSubmatch(command)
		year, _ := strconv.Atoi(match[1])
		round, _ := strconv.Atoi(match[2])
		return true, func(ctx context.Context, chatId int64) error {
			return qa.sendQualyTable(chatId, nil, year, round, modePole, sortClassification)
		}
	}
	return false, nil
}

func (qa *QualifyingApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] != SubcommandQualy || len(data) != 5 {
		return false, nil
	}
	mode := data[1]
	order := data[2]
	year, _ := strconv.Atoi(data[3])
	round, _ := strconv.Atoi(data[4])
	return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		return qa.sendQualyTable(query.Message.Chat.ID, &query.Message.MessageID, year, round, mode, order)
	}
}

func (qa *QualifyingApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == qa.appMenu.Name {
		return true, qa.renderEventList()
	} else if button == qa.appMenu.ButtonBackTo() {
		return true, func(ctx context.Context, chatId int64) error {
			msg := tgbotapi.NewMessage(chatId, "OK")
			msg.ReplyMarkup = qa.appMenu.PrevMenu()
			_, err := qa.bot.Send(msg)
			return err
		}
	}
	return false, nil
}

func (qa *QualifyingApp) renderEventList() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		rows, err := qa.store.Load(laps.SessionQualifying)
		if err != nil {
			return err
		}
		years := laps.Years(rows)
		if len(years) == 0 {
			msg := tgbotapi.NewMessage(chatId, "No qualifying data available yet")
			_, err := qa.bot.Send(msg)
			return err
		}

		message := fmt.Sprintf("Pick a qualifying session (%d):\n\n", years[0])
		message += eventList(rows, years[0], "q")
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = qa.menuKeyboard
		_, err = qa.bot.Send(msg)
		return err
	}
}

func (qa *QualifyingApp) sendQualyTable(chatId int64, messageId *int, year, round int, mode, order string) error {
	rows, err := qa.store.Load(laps.SessionQualifying)
	if err != nil {
		return err
	}
	session := laps.FilterRound(rows, year, round, laps.SessionQualifying)
	if len(session) == 0 {
		msg := tgbotapi.NewMessage(chatId, "No laps recorded for that session")
		_, err := qa.bot.Send(msg)
		return err
	}
	event := session[0].Event

	best := standings.BestLaps(session)
	var body, title string
	switch mode {
	case modeTeammate:
		policy := standings.SortClassification
		if order == sortBiggest {
			policy = standings.SortBiggestGap
		}
		body = qualifyingTable(standings.GapsToTeammate(best, policy), true)
		title = fmt.Sprintf("Teammate gaps — %s (%d)", event, year)
	case modeSectors:
		body = sectorsTable(standings.GapsToReference(best))
		title = fmt.Sprintf("Sectors — %s (%d)", event, year)
	default:
		body = qualifyingTable(standings.GapsToReference(best), false)
		title = fmt.Sprintf("Gap to pole — %s (%d)", event, year)
	}

	keyboard := qa.inlineKeyboard(year, round)
	return sendOrEdit(qa.bot, chatId, messageId, codeBlock(title, body), keyboard)
}

func (qa *QualifyingApp) inlineKeyboard(year, round int) tgbotapi.InlineKeyboardMarkup {
	data := func(mode, order string) string {
		return fmt.Sprintf("%s:%s:%s:%d:%d", SubcommandQualy, mode, order, year, round)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardPole+" "+symbolTimes, data(modePole, sortClassification)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardSectors+" "+symbolSectors, data(modeSectors, sortClassification)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardTeammate+" "+symbolTeam, data(modeTeammate, sortClassification)),
			tgbotapi.NewInlineKeyboardButtonData(inlineKeyboardBiggest+" "+symbolTeam, data(modeTeammate, sortBiggest)),
		),
	)
}
