package ingest

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Journal records which (year, round, session) groups have already been
// ingested so a re-run only fetches what is new. It shares the service's
// SQLite file with the settings store; each owner creates its own table.
type Journal struct {
	db *sql.DB
	mu sync.Mutex
}

func NewJournal(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Printf("error opening database: %s\n", err)
		return nil, errors.Wrap(err, "opening ingest journal")
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS ingested_sessions (
		year INTEGER NOT NULL,
		round INTEGER NOT NULL,
		session TEXT NOT NULL,
		event TEXT NOT NULL,
		PRIMARY KEY (year, round, session));`)
	if err != nil {
		log.Printf("error init database: %s\n", err)
		return nil, errors.Wrap(err, "creating ingest journal table")
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.db.Close()
}

// Has reports whether the session was ingested by a previous run.
func (j *Journal) Has(year, round int, session string) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	row := j.db.QueryRow(
		`SELECT COUNT(1) FROM ingested_sessions WHERE year = ? AND round = ? AND session = ?`,
		year, round, session)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Mark records a successfully persisted session. Marking the same
// session twice is a no-op.
func (j *Journal) Mark(year, round int, session, event string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(
		`INSERT OR REPLACE INTO ingested_sessions (year, round, session, event) VALUES (?, ?, ?, ?)`,
		year, round, session, event)
	return err
}
