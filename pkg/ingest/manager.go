package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/louisuk-data/logicaf1/pkg/caster"
	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/pubsub"
)

// DatasetUpdate is published after a sync pass that changed the stored
// lap tables, so dashboards can reload.
type DatasetUpdate struct {
	Years []int `json:"years"`
}

// RoundCompleted is published once per newly ingested session; the
// notifier turns these into user messages.
type RoundCompleted struct {
	Year    int              `json:"year"`
	Round   int              `json:"round"`
	Event   string           `json:"event"`
	Session laps.SessionType `json:"session"`
}

func (rc RoundCompleted) String() string {
	return fmt.Sprintf("  ▸ Event: %s\n  ▸ Round: %d\n  ▸ Session: %s\n  ▸ Season: %d", rc.Event, rc.Round, rc.Session, rc.Year)
}

// Manager walks the season schedules sequentially and keeps the CSV lap
// tables current. Every year's worth of new data is saved before the
// next year starts, so a provider failure late in the walk never costs
// already fetched seasons. Per-session failures are logged and skipped.
type Manager struct {
	store     *laps.Store
	provider  Provider
	journal   *Journal
	pubsubMgr *pubsub.PubSub
	startYear int
	now       func() time.Time

	updateCaster caster.ChannelCaster[DatasetUpdate]
	roundCaster  caster.ChannelCaster[RoundCompleted]
}

func NewManager(store *laps.Store, provider Provider, journal *Journal, pubsubMgr *pubsub.PubSub, startYear int) *Manager {
	return &Manager{
		store:        store,
		provider:     provider,
		journal:      journal,
		pubsubMgr:    pubsubMgr,
		startYear:    startYear,
		now:          time.Now,
		updateCaster: caster.JSONChannelCaster[DatasetUpdate]{},
		roundCaster:  caster.JSONChannelCaster[RoundCompleted]{},
	}
}

// Sync runs one pass immediately and another on every tick until
// exitChan closes.
func (m *Manager) Sync(ctx context.Context, ticker *time.Ticker, exitChan chan bool) {
	if err := m.RunOnce(ctx); err != nil {
		log.Printf("ingest pass failed: %s", err.Error())
	}
	go func() {
		for {
			select {
			case <-exitChan:
				return
			case t := <-ticker.C:
				fmt.Println("Refreshing lap data: ", t)
				if err := m.RunOnce(ctx); err != nil {
					log.Printf("ingest pass failed: %s", err.Error())
				}
			}
		}
	}()
}

// RunOnce ingests every completed, not-yet-journaled session from the
// start year through the current year, rewriting the per-session-type
// CSV files after each year.
func (m *Manager) RunOnce(ctx context.Context) error {
	tables := map[laps.SessionType][]laps.Lap{}
	for _, session := range []laps.SessionType{laps.SessionQualifying, laps.SessionSprint, laps.SessionRace} {
		rows, err := m.store.Load(session)
		if err != nil {
			return err
		}
		tables[session] = rows
	}

	var completed []RoundCompleted
	currentYear := m.now().Year()
	for year := m.startYear; year <= currentYear; year++ {
		schedule, err := m.provider.Schedule(ctx, year)
		if err != nil {
			// Next year's schedule may simply not exist yet.
			log.Printf("no schedule for %d: %s", year, err.Error())
			continue
		}

		newThisYear := []RoundCompleted{}
		for _, event := range schedule {
			if event.IsTesting() || !event.Completed(m.now()) {
				continue
			}
			for _, session := range eventSessions(event) {
				done, err := m.journal.Has(year, event.RoundNumber, string(session))
				if err != nil {
					return err
				}
				if done {
					continue
				}
				rows, err := m.provider.SessionLaps(ctx, year, event.RoundNumber, session)
				if err != nil {
					log.Printf("skipping %d round %d %s: %s", year, event.RoundNumber, session, err.Error())
					continue
				}
				if len(rows) == 0 {
					continue
				}
				tables[session] = replaceSession(tables[session], year, event.RoundNumber, rows)
				newThisYear = append(newThisYear, RoundCompleted{
					Year:    year,
					Round:   event.RoundNumber,
					Event:   event.EventName,
					Session: session,
				})
			}
		}

		if len(newThisYear) == 0 {
			continue
		}
		// Save after every year so a crash on a later year loses nothing.
		for session, rows := range tables {
			if err := m.store.Save(session, rows); err != nil {
				return err
			}
		}
		for _, rc := range newThisYear {
			if err := m.journal.Mark(rc.Year, rc.Round, string(rc.Session), rc.Event); err != nil {
				return err
			}
		}
		completed = append(completed, newThisYear...)
	}

	if len(completed) > 0 {
		m.publish(completed)
	}
	return nil
}

func (m *Manager) publish(completed []RoundCompleted) {
	for _, rc := range completed {
		payload, err := m.roundCaster.To(rc)
		if err != nil {
			log.Printf("Error casting round completed to json: %s", err.Error())
			continue
		}
		m.pubsubMgr.Publish(pubsub.TopicRoundCompleted, payload)
	}

	years := map[int]bool{}
	update := DatasetUpdate{}
	for _, rc := range completed {
		if !years[rc.Year] {
			years[rc.Year] = true
			update.Years = append(update.Years, rc.Year)
		}
	}
	payload, err := m.updateCaster.To(update)
	if err != nil {
		log.Printf("Error casting dataset update to json: %s", err.Error())
		return
	}
	m.pubsubMgr.Publish(pubsub.TopicLapsUpdated, payload)
}

// eventSessions lists the sessions to ingest for an event. Qualifying
// and the race always run; sprints only on sprint weekends.
func eventSessions(event ScheduleEvent) []laps.SessionType {
	sessions := []laps.SessionType{laps.SessionQualifying}
	if event.IsSprintWeekend() {
		sessions = append(sessions, laps.SessionSprint)
	}
	return append(sessions, laps.SessionRace)
}

// replaceSession drops any rows of the given (year, round) before
// appending the fresh fetch, so a partial earlier ingest cannot leave
// duplicates behind.
func replaceSession(table []laps.Lap, year, round int, fresh []laps.Lap) []laps.Lap {
	out := table[:0]
	for _, lap := range table {
		if lap.Year == year && lap.Round == round {
			continue
		}
		out = append(out, lap)
	}
	return append(out, fresh...)
}
