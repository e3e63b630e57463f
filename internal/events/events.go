package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hostsapi/hosts-api/pkg/logger"
	"github.com/nats-io/nats.go"
)

// Publisher sends change notifications for hosts.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// Envelope wraps every published payload.
type Envelope struct {
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSPublisher connects to url; subjects are published as "<prefix>.<subject>".
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("hosts-api"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	full := subject
	if n.prefix != "" {
		full = n.prefix + "." + subject
	}
	payload, err := json.Marshal(Envelope{Subject: full, Timestamp: time.Now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	logger.Debugf("publishing event subject=%s bytes=%d", full, len(payload))
	return n.conn.Publish(full, payload)
}

// Connected reports whether the underlying connection is usable.
func (n *NATSPublisher) Connected() bool {
	return n.conn != nil && n.conn.IsConnected()
}

func (n *NATSPublisher) Close() error {
	if n.conn == nil {
		return nil
	}
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, interface{}) error { return nil }
func (Nop) Close() error                                         { return nil }
