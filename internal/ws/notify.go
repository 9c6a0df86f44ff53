package ws

import (
	"log"

	"jobboard/internal/domain/event"

	json "github.com/goccy/go-json"
)

// Publisher turns domain events into hub broadcasts.
type Publisher struct {
	hub    *Hub
	logger *log.Logger
}

func NewPublisher(hub *Hub, logger *log.Logger) *Publisher {
	return &Publisher{hub: hub, logger: logger}
}

func (p *Publisher) Publish(ev event.Event) {
	if p == nil || p.hub == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		if p.logger != nil {
			p.logger.Printf("[WS] encode event error | type=%s err=%v", ev.Type, err)
		}
		return
	}
	if !p.hub.Broadcast(b) && p.logger != nil {
		p.logger.Printf("[WS] event dropped | type=%s entity=%d", ev.Type, ev.EntityID)
	}
}
