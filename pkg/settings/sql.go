package settings

import (
	"database/sql"
)

// Session-type flags live in fixed columns; the column for a session
// type must come from this map, never from user input.
var sessionColumns = map[string]string{
	Qualifying: "qualifying",
	Sprint:     "sprint",
	Race:       "race",
}

func buildCreateNotificationsTable() string {
	return `CREATE TABLE IF NOT EXISTS notifications (
		userid TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		chatid TEXT NOT NULL,
		qualifying INTEGER,
		sprint INTEGER,
		race INTEGER);`
}

func buildSelectUserCommand() (string, func(*sql.Rows) (Notifications, error)) {
	return `SELECT qualifying, sprint, race FROM notifications WHERE userid = ?`, processSelectUserRows
}

func processSelectUserRows(rows *sql.Rows) (Notifications, error) {
	defer rows.Close()

	n := AllDisabled()
	// only can be one row
	if rows.Next() {
		var qualifying int
		var sprint int
		var race int
		err := rows.Scan(&qualifying, &sprint, &race)
		if err != nil {
			return n, err
		}
		n.setSessionTypeEnabledFlag(Qualifying, qualifying == 1)
		n.setSessionTypeEnabledFlag(Sprint, sprint == 1)
		n.setSessionTypeEnabledFlag(Race, race == 1)
		return n, nil
	}
	err := rows.Err()
	if err != nil {
		return n, err
	}
	return n, err
}

func buildSelectSessionUsersCommand(sessionType string) (string, func(rows *sql.Rows) ([]TelegramUser, error), bool) {
	column, ok := sessionColumns[sessionType]
	if !ok {
		return "", nil, false
	}
	return `SELECT userid, name, chatid FROM notifications WHERE ` + column + ` = 1`, processSelectSessionUsersRows, true
}

func processSelectSessionUsersRows(rows *sql.Rows) ([]TelegramUser, error) {
	defer rows.Close()

	users := make([]TelegramUser, 0)
	for rows.Next() {
		var id string
		var name string
		var chatid string
		err := rows.Scan(&id, &name, &chatid)
		if err != nil {
			return users, err
		}
		users = append(users, TelegramUser{
			ID:     id,
			Name:   name,
			ChatID: chatid,
		})
	}
	err := rows.Err()
	if err != nil {
		return users, err
	}
	return users, err
}

func buildUpsertUserCommand(userID, name, chatID string, n Notifications) (string, []interface{}) {
	flag := func(enabled bool) int {
		if enabled {
			return 1
		}
		return 0
	}
	stmt := `INSERT OR REPLACE INTO notifications (userid, name, chatid, qualifying, sprint, race) VALUES (?, ?, ?, ?, ?, ?)`
	args := []interface{}{userID, name, chatID, flag(n[Qualifying]), flag(n[Sprint]), flag(n[Race])}
	return stmt, args
}
