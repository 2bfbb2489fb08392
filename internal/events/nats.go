package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

type conn interface {
	Publish(subj string, data []byte) error
}

type natsPublisher struct {
	nc      *nats.Conn
	conn    conn
	subject string
}

// Connect dials url and returns a Publisher that sends each event to
// "<subject>.<stage>".
func Connect(url, subject string) (Publisher, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &natsPublisher{nc: nc, conn: nc, subject: subject}, nil
}

func (p *natsPublisher) Publish(_ context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.conn.Publish(p.subject+"."+ev.Stage, b)
}

func (p *natsPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
	}
}

type noopPublisher struct{}

// Noop returns a Publisher that drops every event.
func Noop() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close()                               {}
