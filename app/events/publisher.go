// Package events publishes notification records to interested subscribers.
// Delivery is best effort; the notification store stays the source of truth.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"picshare/app/models"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is followed by the notification kind, e.g. picshare.notifications.like.
const SubjectPrefix = "picshare.notifications."

// Publisher announces a freshly stored notification.
type Publisher interface {
	PublishNotification(ctx context.Context, n *models.Notification) error
}

// NotificationEvent is the message body published for every notification.
type NotificationEvent struct {
	ID        int         `json:"id"`
	Type      models.Kind `json:"type"`
	FromUser  int         `json:"fromUser"`
	ToUser    int         `json:"toUser"`
	PostID    int         `json:"post,omitempty"`
	Text      string      `json:"text,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Subject returns the subject a notification of kind is published on.
func Subject(kind models.Kind) string {
	return SubjectPrefix + string(kind)
}

// Encode builds the message for n.
func Encode(n *models.Notification) (*nats.Msg, error) {
	data, err := json.Marshal(NotificationEvent{
		ID:        n.ID,
		Type:      n.Kind,
		FromUser:  n.FromUser,
		ToUser:    n.ToUser,
		PostID:    n.PostID,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	msg := nats.NewMsg(Subject(n.Kind))
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")
	return msg, nil
}

// NatsPublisher publishes over a core NATS connection.
type NatsPublisher struct {
	nc *nats.Conn
}

// Connect dials url and returns a publisher that owns the connection.
func Connect(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("picshare"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return NewNatsPublisher(nc), nil
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func (p *NatsPublisher) PublishNotification(ctx context.Context, n *models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := Encode(n)
	if err != nil {
		return err
	}
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NatsPublisher) Close() error {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
		return err
	}
	return nil
}

// Discard drops every event. It is used when no broker is configured.
type Discard struct{}

func (Discard) PublishNotification(context.Context, *models.Notification) error { return nil }
