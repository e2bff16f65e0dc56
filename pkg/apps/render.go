package apps

import (
	"bytes"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/louisuk-data/logicaf1/pkg/helper"
	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/standings"
)

const (
	tablePos    = "P"
	tableDriver = "DRV"
	tableTime   = "TIME"
	tableGap    = "GAP"
	tablePts    = "PTS"
	tableTotal  = "TOT"

	labelPole  = "POLE"
	labelNoGap = "-"
)

func renderTable(header table.Row, rows []table.Row) string {
	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendSeparator()
	t.AppendHeader(header)
	for _, row := range rows {
		t.AppendRow(row)
	}
	t.Render()
	return b.String()
}

// qualifyingTable renders a ranked, gap-annotated best-lap table. In
// reference mode the top row is labeled POLE instead of "+0.000s"; in
// teammate mode rows without a peer show "-".
func qualifyingTable(rows []standings.ResultRow, teammateMode bool) string {
	trows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		gap := labelNoGap
		if teammateMode {
			if row.HasGap {
				gap = helper.FormatSignedGap(row.Gap)
			}
		} else {
			if row.Position == 1 {
				gap = labelPole
			} else {
				gap = helper.FormatGap(row.Gap)
			}
		}
		trows = append(trows, table.Row{
			fmt.Sprintf("%d", row.Position),
			helper.GetDriverCodeName(row.Driver),
			helper.FormatLapTime(row.LapTime),
			gap,
		})
	}
	return renderTable(table.Row{tablePos, tableDriver, tableTime, tableGap}, trows)
}

// sectorsTable renders best-lap sector splits in ranking order.
func sectorsTable(rows []standings.ResultRow) string {
	trows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		trows = append(trows, table.Row{
			fmt.Sprintf("%d", row.Position),
			helper.GetDriverCodeName(row.Driver),
			fmt.Sprintf("%s %s %s", helper.ToSectorTime(row.S1), helper.ToSectorTime(row.S2), helper.ToSectorTime(row.S3)),
		})
	}
	return renderTable(table.Row{tablePos, tableDriver, "S1 S2 S3"}, trows)
}

// raceTable renders the official classification with points, running
// season total and race time. The winner shows the absolute total time,
// finishers their gap, everyone else their status.
func raceTable(results []standings.RaceResult, totals map[string]standings.PointsRow) string {
	trows := make([]table.Row, 0, len(results))
	for i, r := range results {
		pos := r.OfficialPos
		if pos == "" {
			pos = "NC"
		}
		timeCol := r.Status
		if r.Finished() {
			if i == 0 {
				timeCol = helper.FormatLapTime(r.TotalTime)
			} else {
				timeCol = helper.FormatGap(r.GapToWinner)
			}
		}
		running := "0"
		if t, ok := totals[r.Driver]; ok {
			running = helper.FormatPoints(t.RunningTotal)
		}
		trows = append(trows, table.Row{
			pos,
			helper.GetDriverCodeName(r.Driver),
			helper.FormatPoints(r.Points),
			running,
			timeCol,
		})
	}
	return renderTable(table.Row{tablePos, tableDriver, tablePts, tableTotal, tableTime}, trows)
}

// seasonTable renders the championship standings.
func seasonTable(rows []standings.SeasonStanding) string {
	trows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		trows = append(trows, table.Row{
			fmt.Sprintf("%d", row.Position),
			helper.GetDriverCodeName(row.Driver),
			helper.FormatPoints(row.Points),
		})
	}
	return renderTable(table.Row{tablePos, tableDriver, tablePts}, trows)
}

func codeBlock(title, body string) string {
	return fmt.Sprintf("```\n%s\n\n%s```", title, body)
}

func sendOrEdit(bot *tgbotapi.BotAPI, chatId int64, messageId *int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	var cfg tgbotapi.Chattable
	if messageId == nil {
		msg := tgbotapi.NewMessage(chatId, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = keyboard
		cfg = msg
	} else {
		msg := tgbotapi.NewEditMessageText(chatId, *messageId, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = &keyboard
		cfg = msg
	}
	_, err := bot.Send(cfg)
	return err
}

func eventList(rows []laps.Lap, year int, commandPrefix string) string {
	events := laps.RoundEvents(rows, year)
	if len(events) == 0 {
		return ""
	}
	out := ""
	for _, e := range events {
		out += fmt.Sprintf(" ▸ %s ➡ /%s_%d_%d\n", e.Name, commandPrefix, year, e.Round)
	}
	return out
}
