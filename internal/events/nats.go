package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSMirror republishes hub changes on NATS subjects of the form
// <prefix>.<topic>.<op>, e.g. "creaturemap.observations.insert".
type NATSMirror struct {
	nc     *nats.Conn
	prefix string
}

// changeMessage is the JSON payload of a mirrored change.
type changeMessage struct {
	Topic    Topic     `json:"topic"`
	Op       Op        `json:"op"`
	ID       int64     `json:"id,omitempty"`
	ParentID int64     `json:"parent_id,omitempty"`
	Owner    string    `json:"owner,omitempty"`
	At       time.Time `json:"at"`
}

// ConnectNATS dials url and returns a mirror publishing under prefix.
func ConnectNATS(url, prefix string) (*NATSMirror, error) {
	nc, err := nats.Connect(url,
		nats.Name("creaturemap"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSMirror{nc: nc, prefix: prefix}, nil
}

// Attach starts mirroring every change published on h.
func (m *NATSMirror) Attach(h *Hub) {
	h.OnPublish(m.publish)
}

func (m *NATSMirror) publish(c Change) {
	data, err := encodeChange(c)
	if err != nil {
		slog.Error("Failed to encode change", "topic", c.Topic, "error", err)
		return
	}
	// Publish only buffers; it does not wait for the server.
	if err := m.nc.Publish(Subject(m.prefix, c), data); err != nil {
		slog.Warn("Failed to mirror change", "topic", c.Topic, "op", c.Op, "error", err)
	}
}

// Close flushes pending messages and closes the connection.
func (m *NATSMirror) Close() error {
	return m.nc.Drain()
}

// Subject returns the NATS subject for c.
func Subject(prefix string, c Change) string {
	return fmt.Sprintf("%s.%s.%s", prefix, c.Topic, c.Op)
}

func encodeChange(c Change) ([]byte, error) {
	return json.Marshal(changeMessage{
		Topic:    c.Topic,
		Op:       c.Op,
		ID:       c.ID,
		ParentID: c.ParentID,
		Owner:    c.Owner,
		At:       c.At,
	})
}
