// Package pubsub is the in-process channel fabric the ingest loop uses
// to tell dashboards and the notifier that fresh laps landed. Payloads
// travel as JSON strings; pkg/caster converts them back to types.
package pubsub

import "sync"

const (
	// TopicLapsUpdated carries a DatasetUpdate payload after every save.
	TopicLapsUpdated = "lapsUpdated"
	// TopicRoundCompleted carries a RoundCompleted payload once per newly
	// ingested (year, round, session).
	TopicRoundCompleted = "roundCompleted"
)

type PubSub struct {
	mu   sync.Mutex
	subs map[string][]chan string
}

func NewPubSub() *PubSub {
	return &PubSub{
		subs: make(map[string][]chan string),
	}
}

func (ps *PubSub) Subscribe(topic string) <-chan string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch := make(chan string)
	ps.subs[topic] = append(ps.subs[topic], ch)
	return ch
}

func (ps *PubSub) Publish(topic string, data string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subs[topic] {
		ch <- data
	}
}
