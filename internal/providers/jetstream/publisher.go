package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
	"github.com/wishbox/wishbox/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	PublishTimeout time.Duration
}

type publisher struct {
	nc             adapter.NatsConn
	js             adapter.JetStream
	streamName     string
	publishTimeout time.Duration
	origin         string
	json           adapter.JSON
}

// ConnectOptions builds the shared NATS connection options with reconnect
// logging handlers
func ConnectOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// NewPublisher creates a new NATS JetStream publisher and ensures the event
// stream exists. origin identifies this process instance; it is stamped onto
// every outgoing event so subscribers can drop their own echoes.
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON, origin string) (messaging.Publisher, error) {
	nc, js, err := natsJS.Connect(cfg.URL, ConnectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = js.CreateOrUpdateStream(ctx, natsjs.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  []string{"events.wishlist.>", "events.user.>"},
		Retention: natsjs.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   natsjs.FileStorage,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create/update stream: %w", err)
	}

	publishTimeout := cfg.PublishTimeout
	if publishTimeout == 0 {
		publishTimeout = 5 * time.Second
	}

	return &publisher{
		nc:             nc,
		js:             js,
		streamName:     cfg.StreamName,
		publishTimeout: publishTimeout,
		origin:         origin,
		json:           jsonAdapter,
	}, nil
}

// PublishEvent publishes a committed event to NATS JetStream
func (p *publisher) PublishEvent(ctx context.Context, event *domain.Event) error {
	event.Origin = p.origin

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject, err := buildSubject(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	_, err = p.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// buildSubject constructs the NATS subject based on the event's room.
// Format: events.wishlist.{public_id} or events.user.{user_id}
func buildSubject(event *domain.Event) (string, error) {
	if event.UserID != 0 {
		return fmt.Sprintf("events.user.%d", event.UserID), nil
	}
	if event.WishlistPublicID != "" {
		return fmt.Sprintf("events.wishlist.%s", event.WishlistPublicID), nil
	}
	return "", fmt.Errorf("event %s has no room", event.ID)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
