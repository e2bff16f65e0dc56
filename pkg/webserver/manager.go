package webserver

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/louisuk-data/logicaf1/pkg/caster"
	"github.com/louisuk-data/logicaf1/pkg/ingest"
	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/pubsub"
	"github.com/louisuk-data/logicaf1/pkg/standings"
)

var addr = ":8080"
var upgrader = websocket.Upgrader{} // use default options

// Manager serves the read-only web dashboards on top of the same lap
// store the bot uses, plus a websocket that pushes dataset updates so
// open dashboards can reload.
type Manager struct {
	r          *mux.Router
	store      *laps.Store
	teamColors map[string]string

	updateCaster caster.ChannelCaster[ingest.DatasetUpdate]

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewManager(store *laps.Store, pubsubMgr *pubsub.PubSub, teamColors map[string]string) *Manager {
	if teamColors == nil {
		teamColors = DefaultTeamColors()
	}
	m := &Manager{
		r:            mux.NewRouter(),
		store:        store,
		teamColors:   teamColors,
		updateCaster: caster.JSONChannelCaster[ingest.DatasetUpdate]{},
		conns:        make(map[*websocket.Conn]bool),
	}

	m.rootHandlers()
	go m.broadcastUpdates(pubsubMgr.Subscribe(pubsub.TopicLapsUpdated))
	return m
}

func (m *Manager) router() *mux.Router {
	return m.r
}

func (m *Manager) rootHandlers() {
	m.r.HandleFunc("/health", m.healthHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/dashboard/qualifying", m.qualifyingHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/dashboard/race", m.raceHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/dashboard/season", m.seasonHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/download/{session}.csv", m.downloadHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/ws", m.websocketHandler())
}

func (m *Manager) healthHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// sessionParams resolves the year and round query parameters against
// the stored data, defaulting to the newest year and its last round.
func sessionParams(r *http.Request, rows []laps.Lap) (int, int, bool) {
	years := laps.Years(rows)
	if len(years) == 0 {
		return 0, 0, false
	}
	year := years[0]
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		year = y
	}
	events := laps.RoundEvents(rows, year)
	if len(events) == 0 {
		return 0, 0, false
	}
	round := events[len(events)-1].Round
	if rd, err := strconv.Atoi(r.URL.Query().Get("round")); err == nil {
		round = rd
	}
	return year, round, true
}

func (m *Manager) qualifyingHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := m.store.Load(laps.SessionQualifying)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		year, round, ok := sessionParams(r, rows)
		if !ok {
			renderEmpty(w, "No qualifying data yet")
			return
		}
		session := laps.FilterRound(rows, year, round, laps.SessionQualifying)
		if len(session) == 0 {
			renderEmpty(w, "No laps recorded for that session")
			return
		}

		best := standings.BestLaps(session)
		var result []standings.ResultRow
		teammate := r.URL.Query().Get("mode") == "teammate"
		if teammate {
			result = standings.GapsToTeammate(best, standings.SortClassification)
		} else {
			result = standings.GapsToReference(best)
		}
		renderQualifying(w, session[0].Event, year, result, teammate, m.teamColors)
	}
}

func (m *Manager) raceHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		session := laps.SessionRace
		if r.URL.Query().Get("session") == "sprint" {
			session = laps.SessionSprint
		}
		rows, err := m.store.Load(session)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		year, round, ok := sessionParams(r, rows)
		if !ok {
			renderEmpty(w, "No race data yet")
			return
		}
		sessionLaps := laps.FilterRound(rows, year, round, session)
		if len(sessionLaps) == 0 {
			renderEmpty(w, "No laps recorded for that session")
			return
		}

		all, err := m.store.LoadAll()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		totals := standings.TotalsAt(standings.SeasonTotals(laps.FilterYear(all, year)), round, session)
		results := standings.Classification(sessionLaps)
		pace := standings.PaceSeries(sessionLaps)
		renderRace(w, sessionLaps[0].Event, year, session, results, totals, pace, m.teamColors)
	}
}

func (m *Manager) seasonHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := m.store.LoadAll()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		years := laps.Years(all)
		if len(years) == 0 {
			renderEmpty(w, "No season data yet")
			return
		}
		year := years[0]
		if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
			year = y
		}
		table := standings.SeasonStandings(laps.FilterYear(all, year))
		renderSeason(w, year, years, table, m.teamColors)
	}
}

func (m *Manager) downloadHandler() func(w http.ResponseWriter, r *http.Request) {
	sessions := map[string]laps.SessionType{
		"qualifying": laps.SessionQualifying,
		"sprint":     laps.SessionSprint,
		"race":       laps.SessionRace,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessions[mux.Vars(r)["session"]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		rows, err := m.store.Load(session)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if year, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
			rows = laps.FilterYear(rows, year)
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+mux.Vars(r)["session"]+".csv")
		if err := laps.WriteCSV(w, rows); err != nil {
			log.Printf("error writing csv download: %s", err)
		}
	}
}

func (m *Manager) websocketHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}

		m.mu.Lock()
		m.conns[c] = true
		m.mu.Unlock()

		// Reads only serve to detect the peer going away.
		go func() {
			defer m.dropConn(c)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

func (m *Manager) dropConn(c *websocket.Conn) {
	m.mu.Lock()
	delete(m.conns, c)
	m.mu.Unlock()
	c.Close()
}

// broadcastUpdates fans dataset updates out to every connected
// dashboard so they can refetch.
func (m *Manager) broadcastUpdates(ch <-chan string) {
	for payload := range ch {
		update, err := m.updateCaster.From(payload)
		if err != nil {
			log.Printf("Error casting dataset update from json: %s", err.Error())
			continue
		}
		m.mu.Lock()
		conns := make([]*websocket.Conn, 0, len(m.conns))
		for c := range m.conns {
			conns = append(conns, c)
		}
		m.mu.Unlock()
		for _, c := range conns {
			if err := c.WriteJSON(update); err != nil {
				m.dropConn(c)
			}
		}
	}
}

func (m *Manager) Serve() {
	if os.Getenv("WEBSERVER_ADDRESS") != "" {
		addr = os.Getenv("WEBSERVER_ADDRESS")
	}
	srv := &http.Server{
		Addr: addr,
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.router(),
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.Printf("webserver listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
	log.Println("webserver shutting down")
}
