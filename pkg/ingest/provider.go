package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/louisuk-data/logicaf1/pkg/laps"
)

// ScheduleEvent is one event of a season calendar as the timing
// provider reports it.
type ScheduleEvent struct {
	RoundNumber int       `json:"roundNumber"`
	EventName   string    `json:"eventName"`
	EventFormat string    `json:"eventFormat"`
	EventDate   time.Time `json:"eventDate"`
}

// IsTesting reports pre-season testing, which never enters the dataset.
func (e ScheduleEvent) IsTesting() bool {
	return e.EventFormat == "testing"
}

// IsSprintWeekend reports whether the event format includes a sprint.
func (e ScheduleEvent) IsSprintWeekend() bool {
	switch e.EventFormat {
	case "sprint", "sprint_shootout", "sprint_qualifying":
		return true
	}
	return false
}

// Completed reports whether the event had started by the given time.
// Events still in the future have no laps to fetch.
func (e ScheduleEvent) Completed(now time.Time) bool {
	return e.EventDate.Before(now)
}

// Provider is the boundary to the remote timing source. SessionLaps
// returns lap rows with official results already merged in; the core
// never talks to the network itself.
type Provider interface {
	Schedule(ctx context.Context, year int) ([]ScheduleEvent, error)
	SessionLaps(ctx context.Context, year, round int, session laps.SessionType) ([]laps.Lap, error)
}

// HTTPProvider fetches schedules and session laps from the timing
// service's REST API.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *HTTPProvider) Schedule(ctx context.Context, year int) ([]ScheduleEvent, error) {
	var schedule []ScheduleEvent
	url := fmt.Sprintf("%s/schedule/%d", p.BaseURL, year)
	if err := p.getJSON(ctx, url, &schedule); err != nil {
		return nil, errors.Wrapf(err, "fetching schedule for %d", year)
	}
	return schedule, nil
}

func (p *HTTPProvider) SessionLaps(ctx context.Context, year, round int, session laps.SessionType) ([]laps.Lap, error) {
	var rows []laps.Lap
	url := fmt.Sprintf("%s/laps/%d/%d/%s", p.BaseURL, year, round, sessionCode(session))
	if err := p.getJSON(ctx, url, &rows); err != nil {
		return nil, errors.Wrapf(err, "fetching %s laps for %d round %d", session, year, round)
	}
	return rows, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("%s: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func sessionCode(session laps.SessionType) string {
	switch session {
	case laps.SessionQualifying:
		return "Q"
	case laps.SessionSprint:
		return "S"
	default:
		return "R"
	}
}
