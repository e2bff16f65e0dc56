package webserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/pubsub"
)

func testStore(t *testing.T) *laps.Store {
	t.Helper()
	store, err := laps.NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	err = store.Save(laps.SessionQualifying, []laps.Lap{
		{Driver: "Lewis Hamilton", Team: "Mercedes", Year: 2025, Round: 3, Event: "Suzuka", Session: laps.SessionQualifying, LapNumber: 1, LapTime: 90.123},
		{Driver: "Max Verstappen", Team: "Red Bull Racing", Year: 2025, Round: 3, Event: "Suzuka", Session: laps.SessionQualifying, LapNumber: 1, LapTime: 89.456},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	return store
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := NewManager(testStore(t), pubsub.NewPubSub(), nil)
	srv := httptest.NewServer(m.router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s: %v", url, err)
	}
	return resp.StatusCode, string(body)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	status, body := get(t, srv.URL+"/health")
	if status != http.StatusOK || body != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", status, body)
	}
}

func TestQualifyingDashboard(t *testing.T) {
	srv := testServer(t)
	status, body := get(t, srv.URL+"/dashboard/qualifying")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "Suzuka") {
		t.Error("expected the event name in the dashboard")
	}
	if !strings.Contains(body, "POLE") {
		t.Error("expected the pole marker on the fastest driver")
	}
	if !strings.Contains(body, "+0.667s") {
		t.Errorf("expected the gap to pole in the table:\n%s", body)
	}
}

func TestQualifyingDashboardTeammateMode(t *testing.T) {
	srv := testServer(t)
	status, body := get(t, srv.URL+"/dashboard/qualifying?mode=teammate")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	// Both drivers are alone in their team, so no gap is comparable.
	if strings.Contains(body, "0.667") {
		t.Error("singleton teams must not show a teammate gap")
	}
}

func TestDownloadCSV(t *testing.T) {
	srv := testServer(t)
	status, body := get(t, srv.URL+"/download/qualifying.csv?year=2025")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.HasPrefix(body, "Driver,") {
		t.Errorf("expected the CSV header first, got %.40q", body)
	}
	if !strings.Contains(body, "Max Verstappen") {
		t.Error("expected lap rows in the download")
	}
}

func TestDownloadUnknownSession(t *testing.T) {
	srv := testServer(t)
	status, _ := get(t, srv.URL+"/download/practice.csv")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session type, got %d", status)
	}
}
