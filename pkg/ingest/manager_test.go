package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/pubsub"
)

type fakeProvider struct {
	schedules map[int][]ScheduleEvent
	lapCalls  int
}

func (f *fakeProvider) Schedule(ctx context.Context, year int) ([]ScheduleEvent, error) {
	return f.schedules[year], nil
}

func (f *fakeProvider) SessionLaps(ctx context.Context, year, round int, session laps.SessionType) ([]laps.Lap, error) {
	f.lapCalls++
	return []laps.Lap{
		{
			Driver: "VER", Team: "Red Bull Racing", Year: year, Round: round,
			Event: "Test Grand Prix", Session: session, LapNumber: 1, LapTime: 90,
		},
	}, nil
}

func testManager(t *testing.T, provider Provider) (*Manager, *laps.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := laps.NewStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	journal, err := NewJournal(filepath.Join(dir, "service.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { journal.Close() })

	m := NewManager(store, provider, journal, pubsub.NewPubSub(), 2025)
	m.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return m, store
}

func TestRunOnce_IngestsCompletedSessions(t *testing.T) {
	provider := &fakeProvider{schedules: map[int][]ScheduleEvent{
		2025: {
			{RoundNumber: 0, EventName: "Pre-Season Testing", EventFormat: "testing", EventDate: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)},
			{RoundNumber: 1, EventName: "Test Grand Prix", EventFormat: "conventional", EventDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
			{RoundNumber: 9, EventName: "Future Grand Prix", EventFormat: "conventional", EventDate: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)},
		},
	}}
	m, store := testManager(t, provider)

	if err := m.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	// Round 1 only: qualifying + race, no sprint on a conventional
	// weekend, nothing for testing or future events.
	if provider.lapCalls != 2 {
		t.Errorf("provider called %d times, want 2", provider.lapCalls)
	}
	qualy, err := store.Load(laps.SessionQualifying)
	if err != nil {
		t.Fatal(err)
	}
	if len(qualy) != 1 || qualy[0].Session != laps.SessionQualifying {
		t.Errorf("qualifying table = %+v, want one row", qualy)
	}
	race, err := store.Load(laps.SessionRace)
	if err != nil {
		t.Fatal(err)
	}
	if len(race) != 1 {
		t.Errorf("race table has %d rows, want 1", len(race))
	}
}

func TestRunOnce_SprintWeekendAddsSprint(t *testing.T) {
	provider := &fakeProvider{schedules: map[int][]ScheduleEvent{
		2025: {
			{RoundNumber: 2, EventName: "Sprint Grand Prix", EventFormat: "sprint_qualifying", EventDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		},
	}}
	m, store := testManager(t, provider)

	if err := m.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	if provider.lapCalls != 3 {
		t.Errorf("provider called %d times, want 3 (Q, S, R)", provider.lapCalls)
	}
	sprint, err := store.Load(laps.SessionSprint)
	if err != nil {
		t.Fatal(err)
	}
	if len(sprint) != 1 {
		t.Errorf("sprint table has %d rows, want 1", len(sprint))
	}
}

func TestRunOnce_JournalSkipsIngestedSessions(t *testing.T) {
	provider := &fakeProvider{schedules: map[int][]ScheduleEvent{
		2025: {
			{RoundNumber: 1, EventName: "Test Grand Prix", EventFormat: "conventional", EventDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
		},
	}}
	m, _ := testManager(t, provider)

	if err := m.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	first := provider.lapCalls
	if err := m.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	if provider.lapCalls != first {
		t.Errorf("second pass refetched: %d calls, want %d", provider.lapCalls, first)
	}
}
