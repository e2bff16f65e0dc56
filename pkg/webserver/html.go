package webserver

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/louisuk-data/logicaf1/pkg/helper"
	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/standings"
)

const fallbackColor = "#787878"

// DefaultTeamColors is the accent palette the dashboards ship with.
// Deployments can inject their own map; unknown teams fall back to grey.
func DefaultTeamColors() map[string]string {
	return map[string]string{
		"Red Bull Racing": "#3671C6",
		"Ferrari":         "#E8002D",
		"Mercedes":        "#27F4D2",
		"McLaren":         "#FF8000",
		"Aston Martin":    "#229971",
		"Alpine":          "#00A1E8",
		"Williams":        "#64C4FF",
		"RB":              "#6692FF",
		"Kick Sauber":     "#52E252",
		"Haas F1 Team":    "#B6BABD",
	}
}

func teamColor(colors map[string]string, team string) string {
	if c, ok := colors[team]; ok {
		return c
	}
	return fallbackColor
}

type tableRow struct {
	Pos    string
	Driver string
	Team   string
	Color  string
	Cols   []string
}

type page struct {
	Title   string
	Message string
	Headers []string
	Rows    []tableRow
	Links   []pageLink
}

type pageLink struct {
	Label string
	URL   string
}

func renderEmpty(w http.ResponseWriter, message string) {
	render(w, page{Title: "Lap records", Message: message})
}

func renderQualifying(w http.ResponseWriter, event string, year int, rows []standings.ResultRow, teammateMode bool, colors map[string]string) {
	p := page{
		Title:   fmt.Sprintf("Qualifying — %s (%d)", event, year),
		Headers: []string{"Time", "Gap"},
		Links: []pageLink{
			{Label: "Gap to pole", URL: "/dashboard/qualifying?year=" + fmt.Sprint(year)},
			{Label: "Teammate gaps", URL: fmt.Sprintf("/dashboard/qualifying?year=%d&mode=teammate", year)},
			{Label: "Download CSV", URL: fmt.Sprintf("/download/qualifying.csv?year=%d", year)},
		},
	}
	for _, row := range rows {
		gap := "-"
		if teammateMode {
			if row.HasGap {
				gap = helper.FormatSignedGap(row.Gap)
			}
		} else if row.Position == 1 {
			gap = "POLE"
		} else {
			gap = helper.FormatGap(row.Gap)
		}
		p.Rows = append(p.Rows, tableRow{
			Pos:    fmt.Sprint(row.Position),
			Driver: row.Driver,
			Team:   row.Team,
			Color:  teamColor(colors, row.Team),
			Cols:   []string{helper.FormatLapTime(row.LapTime), gap},
		})
	}
	render(w, p)
}

func renderRace(w http.ResponseWriter, event string, year int, session laps.SessionType, results []standings.RaceResult, totals map[string]standings.PointsRow, pace []standings.DriverPace, colors map[string]string) {
	p := page{
		Title:   fmt.Sprintf("%s — %s (%d)", session, event, year),
		Headers: []string{"Pts", "Total", "Time"},
		Links: []pageLink{
			{Label: "Race", URL: fmt.Sprintf("/dashboard/race?year=%d", year)},
			{Label: "Sprint", URL: fmt.Sprintf("/dashboard/race?year=%d&session=sprint", year)},
			{Label: "Download CSV", URL: fmt.Sprintf("/download/race.csv?year=%d", year)},
		},
	}
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
		p.Rows = append(p.Rows, tableRow{
			Pos:    pos,
			Driver: r.Driver,
			Team:   r.Team,
			Color:  teamColor(colors, r.Team),
			Cols:   []string{helper.FormatPoints(r.Points), running, timeCol},
		})
	}
	if len(pace) > 0 {
		p.Message = fmt.Sprintf("Pace series available for %d drivers", len(pace))
	}
	render(w, p)
}

func renderSeason(w http.ResponseWriter, year int, years []int, rows []standings.SeasonStanding, colors map[string]string) {
	p := page{
		Title:   fmt.Sprintf("Championship standings (%d)", year),
		Headers: []string{"Points"},
	}
	for _, y := range years {
		p.Links = append(p.Links, pageLink{Label: fmt.Sprint(y), URL: fmt.Sprintf("/dashboard/season?year=%d", y)})
	}
	for _, row := range rows {
		p.Rows = append(p.Rows, tableRow{
			Pos:    fmt.Sprint(row.Position),
			Driver: row.Driver,
			Team:   row.Team,
			Color:  teamColor(colors, row.Team),
			Cols:   []string{helper.FormatPoints(row.Points)},
		})
	}
	render(w, p)
}

func render(w http.ResponseWriter, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, p); err != nil {
		fmt.Println("Error rendering dashboard:", err)
	}
}

var dashboardTemplate = template.Must(template.New("").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: monospace; background: #16161a; color: #e4e4e4; margin: 2em; }
    table { border-collapse: collapse; }
    th, td { padding: 0.3em 0.8em; text-align: left; border-bottom: 1px solid #333; }
    .team { border-left: 4px solid; padding-left: 0.5em; }
    nav a { color: #64c4ff; margin-right: 1em; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <nav>
  {{ range .Links }}<a href="{{ .URL }}">{{ .Label }}</a>{{ end }}
  </nav>
  {{ if .Message }}<p>{{ .Message }}</p>{{ end }}
  {{ if .Rows }}
  <table>
    <tr><th>P</th><th>Driver</th><th>Team</th>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr>
    {{ range .Rows }}
    <tr>
      <td>{{ .Pos }}</td>
      <td>{{ .Driver }}</td>
      <td class="team" style="border-left-color: {{ .Color }}">{{ .Team }}</td>
      {{ range .Cols }}<td>{{ . }}</td>{{ end }}
    </tr>
    {{ end }}
  </table>
  {{ end }}

  <script>
    // Reload when the ingest loop announces fresh laps.
    const socket = new WebSocket('ws://' + window.location.host + '/ws');
    socket.addEventListener('message', (event) => {
      console.log('dataset update:', event.data);
      window.location.reload();
    });
  </script>
</body>
</html>
`))
