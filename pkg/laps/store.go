package laps

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Store reads and writes the flat lap tables, one CSV file per session
// type. Paths are injected so tests and deployments can point it at any
// directory. Saves rewrite the whole file; the ingest loop always works
// with full snapshots.
type Store struct {
	dir       string
	fileNames map[SessionType]string
}

// DefaultFileNames mirrors the layout of the original datasets.
func DefaultFileNames() map[SessionType]string {
	return map[SessionType]string{
		SessionRace:       "race_laps.csv",
		SessionSprint:     "sprint_laps.csv",
		SessionQualifying: "qualy_laps.csv",
	}
}

func NewStore(dir string, fileNames map[SessionType]string) (*Store, error) {
	if fileNames == nil {
		fileNames = DefaultFileNames()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data dir %q", dir)
	}
	return &Store{dir: dir, fileNames: fileNames}, nil
}

func (s *Store) path(session SessionType) (string, error) {
	name, ok := s.fileNames[session]
	if !ok {
		return "", errors.Errorf("no file configured for session type %q", session)
	}
	return filepath.Join(s.dir, name), nil
}

// Load reads all laps of one session type. A missing file is an empty
// dataset, not an error. Rows whose required columns cannot be read are
// skipped; unparseable durations inside a row read as missing values.
func (s *Store) Load(session SessionType) ([]Lap, error) {
	path, err := s.path(session)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(records) == 0 {
		return nil, nil
	}

	sch, ok := newSchema(records[0])
	if !ok {
		return nil, errors.Errorf("%s: header is missing required lap columns", path)
	}

	result := make([]Lap, 0, len(records)-1)
	for _, rec := range records[1:] {
		lap := sch.lap(rec, session)
		if lap.Driver == "" {
			continue
		}
		result = append(result, lap)
	}
	return result, nil
}

// LoadAll reads every configured session type into one table. Session
// types whose file does not exist yet contribute nothing.
func (s *Store) LoadAll() ([]Lap, error) {
	var all []Lap
	for _, session := range []SessionType{SessionQualifying, SessionSprint, SessionRace} {
		if _, ok := s.fileNames[session]; !ok {
			continue
		}
		ls, err := s.Load(session)
		if err != nil {
			return nil, err
		}
		all = append(all, ls...)
	}
	return all, nil
}

// Save rewrites the full file for one session type.
func (s *Store) Save(session SessionType, rows []Lap) error {
	path, err := s.path(session)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	log.Printf("saved %d %s laps to %s", len(rows), session, path)
	return nil
}

// WriteCSV writes a lap table, header included, in the stored file
// format. The webserver uses it for dataset downloads.
func WriteCSV(w io.Writer, rows []Lap) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, lap := range rows {
		if err := cw.Write(record(lap)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FilterSession keeps the laps of one (year, event, session) triple.
func FilterSession(rows []Lap, year int, event string, session SessionType) []Lap {
	var out []Lap
	for _, lap := range rows {
		if lap.Year == year && lap.Event == event && lap.Session == session {
			out = append(out, lap)
		}
	}
	return out
}

// FilterYear keeps one season's laps.
func FilterYear(rows []Lap, year int) []Lap {
	var out []Lap
	for _, lap := range rows {
		if lap.Year == year {
			out = append(out, lap)
		}
	}
	return out
}

// Years lists the seasons present, newest first.
func Years(rows []Lap) []int {
	seen := map[int]bool{}
	var years []int
	for _, lap := range rows {
		if !seen[lap.Year] {
			seen[lap.Year] = true
			years = append(years, lap.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// RoundEvent pairs a round number with its event name.
type RoundEvent struct {
	Round int
	Name  string
}

// RoundEvents lists the events of one season in round order.
func RoundEvents(rows []Lap, year int) []RoundEvent {
	seen := map[string]bool{}
	var events []RoundEvent
	for _, lap := range rows {
		if lap.Year != year || seen[lap.Event] {
			continue
		}
		seen[lap.Event] = true
		events = append(events, RoundEvent{Round: lap.Round, Name: lap.Event})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Round < events[j].Round
	})
	return events
}

// Events lists the event names of one season in round order.
func Events(rows []Lap, year int) []string {
	events := RoundEvents(rows, year)
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return names
}

// FilterRound keeps the laps of one (year, round, session) triple.
func FilterRound(rows []Lap, year, round int, session SessionType) []Lap {
	var out []Lap
	for _, lap := range rows {
		if lap.Year == year && lap.Round == round && lap.Session == session {
			out = append(out, lap)
		}
	}
	return out
}
