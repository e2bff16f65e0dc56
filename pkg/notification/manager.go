package notification

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"

	"github.com/louisuk-data/logicaf1/pkg/caster"
	"github.com/louisuk-data/logicaf1/pkg/ingest"
	"github.com/louisuk-data/logicaf1/pkg/pubsub"
	"github.com/louisuk-data/logicaf1/pkg/settings"
)

type Lister interface {
	ListUsersForSession(sessionType string) ([]settings.TelegramUser, error)
}

// Manager listens for newly ingested rounds and messages the users who
// opted into that session type.
type Manager struct {
	ctx    context.Context
	lister Lister
	bot    *tgbotapi.BotAPI
	caster caster.ChannelCaster[ingest.RoundCompleted]
}

func NewManager(ctx context.Context, bot *tgbotapi.BotAPI, lister Lister) *Manager {
	return &Manager{
		ctx:    ctx,
		bot:    bot,
		lister: lister,
		caster: caster.JSONChannelCaster[ingest.RoundCompleted]{},
	}
}

func (m *Manager) Start(pubsubMgr *pubsub.PubSub, exitChan <-chan bool) {
	completedChan := pubsubMgr.Subscribe(pubsub.TopicRoundCompleted)
	for {
		select {
		case <-exitChan:
			return
		case payload := <-completedChan:
			round, err := m.caster.From(payload)
			if err != nil {
				log.Printf("Error casting round completed: %s", err.Error())
				continue
			}
			m.handleNotification(round)
		}
	}
}

func (m *Manager) handleNotification(round ingest.RoundCompleted) {
	recipients, err := m.lister.ListUsersForSession(string(round.Session))
	if err != nil {
		log.Printf("Error listing users for completed round: %s", err.Error())
		return
	}
	log.Printf("Sending notification for %s %s to %d telegram users\n", round.Event, round.Session, len(recipients))
	if err := m.sendNotification(recipients, round); err != nil {
		log.Printf("Error notifying users: %s", err.Error())
	}
}

func (m *Manager) sendNotification(tusers []settings.TelegramUser, round ingest.RoundCompleted) error {
	if len(tusers) == 0 {
		return nil
	}

	tg := &Telegram{}
	tg.SetClient(m.bot)

	for _, tuser := range tusers {
		chatID, _ := strconv.ParseInt(tuser.ChatID, 0, 64)
		tg.AddReceivers(chatID)
	}

	n := notify.NewWithServices(tg)
	return n.Send(m.ctx, "New session results available:", round.String())
}
