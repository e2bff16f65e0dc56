package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/louisuk-data/logicaf1/pkg/apps"
	"github.com/louisuk-data/logicaf1/pkg/ingest"
	"github.com/louisuk-data/logicaf1/pkg/laps"
	"github.com/louisuk-data/logicaf1/pkg/notification"
	"github.com/louisuk-data/logicaf1/pkg/pubsub"
	"github.com/louisuk-data/logicaf1/pkg/settings"
	"github.com/louisuk-data/logicaf1/pkg/webserver"
)

const (
	defaultDataDir   = "./data"
	defaultDBName    = "logicaf1.db"
	defaultStartYear = 2021
)

var (
	bot     *tgbotapi.BotAPI
	mainApp *apps.MainApp
)

func main() {
	var err error
	// get token from env
	token := os.Getenv("TELEGRAM_TOKEN")
	bot, err = tgbotapi.NewBotAPI(token)
	if err != nil {
		// Abort if something is wrong
		log.Panic(err)
	}

	// Set this to true to log all interactions with telegram servers
	bot.Debug = false

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = dataDir + "/" + defaultDBName
	}
	providerURL := os.Getenv("PROVIDER_URL")
	startYear := defaultStartYear
	if y, err := strconv.Atoi(os.Getenv("START_YEAR")); err == nil {
		startYear = y
	}
	syncMinutes := 60
	if m, err := strconv.Atoi(os.Getenv("SYNC_INTERVAL_MINUTES")); err == nil {
		syncMinutes = m
	}

	store, err := laps.NewStore(dataDir, nil)
	if err != nil {
		log.Panic(err)
	}
	journal, err := ingest.NewJournal(dbPath)
	if err != nil {
		log.Panic(err)
	}
	defer journal.Close()
	settingsMgr, err := settings.NewManager(dbPath)
	if err != nil {
		log.Panic(err)
	}
	defer settingsMgr.Close()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)

	pubsubMgr := pubsub.NewPubSub()
	mainApp = apps.NewMainApp(ctx, bot, store, settingsMgr, pubsubMgr)

	// `updates` is a golang channel which receives telegram updates
	updates := bot.GetUpdatesChan(u)
	go receiveUpdates(ctx, updates)

	exitChan := make(chan bool)

	notifier := notification.NewManager(ctx, bot, settingsMgr)
	go notifier.Start(pubsubMgr, exitChan)

	syncTicker := time.NewTicker(time.Duration(syncMinutes) * time.Minute)
	ingestMgr := ingest.NewManager(store, ingest.NewHTTPProvider(providerURL), journal, pubsubMgr, startYear)
	ingestMgr.Sync(ctx, syncTicker, exitChan)

	log.Println("Start listening for updates. Press Ctrl-C to stop it")

	ws := webserver.NewManager(store, pubsubMgr, nil)
	go ws.Serve()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	// lock the main thread until we receive a signal
	<-sigs

	syncTicker.Stop()
	close(exitChan)
	cancel()
}

func receiveUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		// stop looping if ctx is cancelled
		case <-ctx.Done():
			return
		// receive update from channel and then handle it
		case update := <-updates:
			handleUpdate(ctx, update)
		}
	}
}

func handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	// Handle messages
	case update.Message != nil:
		handleMessage(ctx, update.Message)
	// Handle button clicks
	case update.CallbackQuery != nil:
		handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

func handleMessage(ctx context.Context, message *tgbotapi.Message) {
	user := message.From
	text := message.Text

	if user == nil {
		return
	}

	// Print to console
	log.Printf("%s wrote %s", user.FirstName, text)

	var err error
	if message.IsCommand() {
		err = handleCommand(ctx, message.Chat.ID, text)
	} else {
		err = handleButton(ctx, message.Chat.ID, text)
	}

	if err != nil {
		log.Printf("An error occured: %s", err.Error())
	}
}

func handleCommand(ctx context.Context, chatId int64, command string) error {
	accept, handler := mainApp.AcceptCommand(command)
	if accept {
		return handler(ctx, chatId)
	}
	return nil
}

func handleButton(ctx context.Context, chatId int64, button string) error {
	accept, handler := mainApp.AcceptButton(button)
	if accept {
		return handler(ctx, chatId)
	}
	return nil
}

func handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	accept, handler := mainApp.AcceptCallback(query)
	if accept {
		if err := handler(ctx, query); err != nil {
			log.Printf("An error occured: %s", err.Error())
		}
	}
}
