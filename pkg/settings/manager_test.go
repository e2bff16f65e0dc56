package settings

import (
	"path/filepath"
	"testing"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNotificationsDefaultDisabled(t *testing.T) {
	m := testManager(t)

	n, err := m.ListNotifications("42")
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	for _, sessionType := range []string{Qualifying, Sprint, Race} {
		if n[sessionType] {
			t.Errorf("expected %s disabled for unknown user", sessionType)
		}
	}
}

func TestToggleNotification(t *testing.T) {
	m := testManager(t)

	if err := m.ToggleNotification("42", "ham", "42", Race); err != nil {
		t.Fatalf("ToggleNotification: %v", err)
	}
	n, err := m.ListNotifications("42")
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if !n[Race] {
		t.Error("expected race notifications enabled after toggle")
	}
	if n[Qualifying] || n[Sprint] {
		t.Error("toggle must not touch the other session types")
	}

	// toggling again flips it back
	if err := m.ToggleNotification("42", "ham", "42", Race); err != nil {
		t.Fatalf("ToggleNotification: %v", err)
	}
	n, err = m.ListNotifications("42")
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if n[Race] {
		t.Error("expected race notifications disabled after second toggle")
	}
}

func TestListUsersForSession(t *testing.T) {
	m := testManager(t)

	if err := m.ToggleNotification("1", "ham", "100", Race); err != nil {
		t.Fatal(err)
	}
	if err := m.ToggleNotification("2", "ver", "200", Qualifying); err != nil {
		t.Fatal(err)
	}

	users, err := m.ListUsersForSession(Race)
	if err != nil {
		t.Fatalf("ListUsersForSession: %v", err)
	}
	if len(users) != 1 || users[0].ChatID != "100" {
		t.Fatalf("expected only chat 100 opted into races, got %+v", users)
	}

	if _, err := m.ListUsersForSession("Practice"); err == nil {
		t.Error("expected error for unknown session type")
	}
}
