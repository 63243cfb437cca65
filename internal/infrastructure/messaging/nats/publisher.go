package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"bookswap/internal/domain/entity"
)

const subjectPrefix = "books."

type conn interface {
	Publish(subj string, data []byte) error
}

// Publisher sends listing events to books.<type> subjects.
type Publisher struct {
	conn   conn
	closer func()
}

func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("bookswap"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &Publisher{conn: nc, closer: nc.Close}, nil
}

func Subject(eventType entity.ListingEventType) string {
	return subjectPrefix + string(eventType)
}

func (p *Publisher) PublishListingEvent(ctx context.Context, event entity.ListingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(Subject(event.Type), data)
}

func (p *Publisher) Close() {
	if p.closer != nil {
		p.closer()
	}
}
