package bridge

import (
	"context"
	"fmt"
	"time"

	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
	"github.com/wishbox/wishbox/internal/messaging"
	"github.com/wishbox/wishbox/internal/providers/jetstream"
)

// consumerInactiveThreshold lets the server reap a process's durable consumer
// once it stops pulling. Consumer names carry the process origin, so without
// this every restart would leave a dead durable behind on the stream.
const consumerInactiveThreshold = 10 * time.Minute

// Config holds the configuration for the event bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run starts consuming broadcasted events until ctx is cancelled
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	hub    *Hub
	json   adapter.JSON
	origin string
	config Config
}

// NewBridge creates the consumer half of the cross-process fan-out: it reads
// events siblings published onto the broadcast stream and delivers them to
// this process's local connections. origin must match the value stamped by
// this process's publisher so its own events are dropped instead of echoed.
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	hub *Hub,
	jsonAdapter adapter.JSON,
	origin string,
) (Bridge, error) {
	opts := jetstream.ConnectOptions(jetstream.Config{
		ConnectionName: cfg.ConnectionName,
		MaxReconnects:  cfg.MaxReconnects,
		ReconnectWait:  cfg.ReconnectWait,
	})

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &bridge{
		nc:     nc,
		js:     js,
		hub:    hub,
		json:   jsonAdapter,
		origin: origin,
		config: cfg,
	}, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting event bridge",
		zap.String("stream", b.config.StreamName),
		zap.String("consumer", b.config.ConsumerName))

	// Every room topic; each process sees every event and filters by origin
	consumerConfig := natsjs.ConsumerConfig{
		Durable:           b.config.ConsumerName,
		AckPolicy:         natsjs.AckExplicitPolicy,
		AckWait:           b.config.AckWaitTimeout,
		MaxDeliver:        b.config.MaxDeliver,
		FilterSubjects:    []string{"events.wishlist.>", "events.user.>"},
		DeliverPolicy:     natsjs.DeliverNewPolicy,
		InactiveThreshold: consumerInactiveThreshold,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	// Create subscription
	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down event bridge")
			return ctx.Err()
		case msg := <-msgChan:
			b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes a single NATS message
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var event domain.Event
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal event"))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	// Events this process originated were already fanned out locally at
	// publish time; delivering them again would duplicate frames, and
	// re-publishing them would loop.
	if event.Origin != b.origin {
		b.hub.Broadcast(ctx, &event)
	}

	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}

// fanoutPublisher delivers each event to local connections immediately and
// then writes it onto the broadcast stream for sibling processes.
type fanoutPublisher struct {
	hub   *Hub
	inner messaging.Publisher
}

// NewFanoutPublisher wraps a broker publisher with immediate local delivery
func NewFanoutPublisher(hub *Hub, inner messaging.Publisher) messaging.Publisher {
	return &fanoutPublisher{hub: hub, inner: inner}
}

func (p *fanoutPublisher) PublishEvent(ctx context.Context, event *domain.Event) error {
	p.hub.Broadcast(ctx, event)
	return p.inner.PublishEvent(ctx, event)
}

func (p *fanoutPublisher) Close() {
	p.inner.Close()
}
