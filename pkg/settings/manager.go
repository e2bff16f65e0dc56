package settings

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const (
	Qualifying = "Qualifying"
	Sprint     = "Sprint"
	Race       = "Race"
)

type TelegramUser struct {
	ID     string
	Name   string
	ChatID string
}

// Notifications maps a session type to whether the user wants a message
// when a new round of that type lands in the dataset.
type Notifications map[string]bool

func AllEnabled() Notifications {
	return Notifications{
		Qualifying: true,
		Sprint:     true,
		Race:       true,
	}
}

func AllDisabled() Notifications {
	return Notifications{
		Qualifying: false,
		Sprint:     false,
		Race:       false,
	}
}

func (n Notifications) QualifyingSymbol() string {
	return symbolStatus(n[Qualifying])
}

func (n Notifications) SprintSymbol() string {
	return symbolStatus(n[Sprint])
}

func (n Notifications) RaceSymbol() string {
	return symbolStatus(n[Race])
}

func (n Notifications) String() string {
	status := []string{}
	for _, sessionType := range []string{Qualifying, Sprint, Race} {
		status = append(status, fmt.Sprintf("%s Notify on new %q results", symbolStatus(n[sessionType]), sessionType))
	}
	return strings.Join(status, "\n")
}

func symbolStatus(enabled bool) string {
	if enabled {
		return "🔔"
	}
	return "🔕"
}

func (n *Notifications) setSessionTypeEnabledFlag(sessionType string, enabled bool) {
	(*n)[sessionType] = enabled
}

type Manager struct {
	db *sql.DB
	mu sync.Mutex
}

func NewManager(dbPath string) (*Manager, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Printf("error opening database: %s\n", err)
		return nil, err
	}

	initTableStmt := buildCreateNotificationsTable()

	_, err = db.Exec(initTableStmt)
	if err != nil {
		log.Printf("error init database: %s\n", err)
		return nil, err
	}

	return &Manager{
		db: db,
		mu: sync.Mutex{},
	}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// ToggleNotification flips one session-type flag for a user, creating
// the user row if this is their first interaction.
func (m *Manager) ToggleNotification(userID, name, chatID, sessionType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.listNotifications(userID)
	if err != nil {
		return err
	}

	n.setSessionTypeEnabledFlag(sessionType, !n[sessionType])
	stmt, args := buildUpsertUserCommand(userID, name, chatID, n)
	_, err = m.db.Exec(stmt, args...)
	if err != nil {
		log.Printf("error updating database: %s\n", err)
		return err
	}
	return nil
}

func (m *Manager) ListNotifications(userID string) (Notifications, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listNotifications(userID)
}

// ListUsersForSession returns every user opted into a session type.
func (m *Manager) ListUsersForSession(sessionType string) ([]TelegramUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := []TelegramUser{}
	stmt, read, ok := buildSelectSessionUsersCommand(sessionType)
	if !ok {
		return users, fmt.Errorf("unknown session type %q", sessionType)
	}
	rows, err := m.db.Query(stmt)
	if err != nil {
		return users, err
	}
	return read(rows)
}

func (m *Manager) listNotifications(userID string) (Notifications, error) {
	n := AllDisabled()

	stmt, read := buildSelectUserCommand()
	rows, err := m.db.Query(stmt, userID)
	if err != nil {
		return n, err
	}
	return read(rows)
}
