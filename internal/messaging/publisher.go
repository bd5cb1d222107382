package messaging

import (
	"context"

	"github.com/wishbox/wishbox/internal/domain"
)

// Publisher defines the interface for publishing realtime events to the
// message broker. Events are published only after their database transaction
// commits; a publish failure never rolls anything back.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a committed event to the broker
	PublishEvent(ctx context.Context, event *domain.Event) error
	// Close closes the connection
	Close()
}
