package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
	"github.com/wishbox/wishbox/internal/messaging"
	"github.com/wishbox/wishbox/internal/store"
	"github.com/wishbox/wishbox/internal/store/schema"
)

// Result reports the reservation state after a successful call
type Result struct {
	ItemID       int64
	Reserved     bool
	ReservedByMe bool
	ReservedAt   *time.Time
}

// Manager defines the interface for reservation operations
//
//go:generate mockgen -source=manager.go -destination=../mocks/reservation.go -package=mocks -mock_names=Manager=MockReservationManager
type Manager interface {
	// Reserve marks an item reserved for the viewer. Reserving an item the
	// viewer already holds succeeds without side effects.
	Reserve(ctx context.Context, publicID string, itemID int64, viewerHash string) (*Result, error)
	// Unreserve releases the viewer's reservation on an item
	Unreserve(ctx context.Context, publicID string, itemID int64, viewerHash string) (*Result, error)
}

type manager struct {
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewManager creates a new reservation manager
func NewManager(st store.Store, pub messaging.Publisher, clock adapter.Clock) Manager {
	return &manager{
		store:     st,
		publisher: pub,
		clock:     clock,
	}
}

// resolveItem looks up the wishlist by public id and the item inside it.
// Archived items and items of foreign or private wishlists read as absent.
func (m *manager) resolveItem(ctx context.Context, publicID string, itemID int64) (*schema.Wishlist, *schema.WishlistItem, error) {
	wishlist, err := m.store.GetWishlistByPublicID(ctx, publicID)
	if err != nil {
		return nil, nil, err
	}
	if wishlist == nil || !wishlist.IsPublic {
		return nil, nil, domain.ErrNotFound
	}

	item, err := m.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil || item.WishlistID != wishlist.ID || item.IsArchived {
		return nil, nil, domain.ErrNotFound
	}
	return wishlist, item, nil
}

// Reserve marks an item reserved for the viewer
func (m *manager) Reserve(ctx context.Context, publicID string, itemID int64, viewerHash string) (*Result, error) {
	wishlist, item, err := m.resolveItem(ctx, publicID, itemID)
	if err != nil {
		return nil, err
	}

	existing, err := m.store.GetActiveReservation(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.ViewerTokenHash == viewerHash {
			// Idempotent re-reserve by the holder
			reservedAt := existing.CreatedAt
			return &Result{ItemID: item.ID, Reserved: true, ReservedByMe: true, ReservedAt: &reservedAt}, nil
		}
		return nil, fmt.Errorf("item already reserved: %w", domain.ErrConflict)
	}

	reservation, err := m.store.CreateReservation(ctx, item.ID, viewerHash)
	if err != nil {
		return nil, err
	}

	reservedAt := reservation.CreatedAt
	m.publish(ctx, domain.NewWishlistEvent(domain.EventReservationChanged, wishlist.PublicID, m.clock.Now(), map[string]interface{}{
		"item_id":     item.ID,
		"reserved":    true,
		"reserved_at": reservedAt.UTC().Format(time.RFC3339Nano),
	}))

	return &Result{ItemID: item.ID, Reserved: true, ReservedByMe: true, ReservedAt: &reservedAt}, nil
}

// Unreserve releases the viewer's reservation on an item
func (m *manager) Unreserve(ctx context.Context, publicID string, itemID int64, viewerHash string) (*Result, error) {
	wishlist, item, err := m.resolveItem(ctx, publicID, itemID)
	if err != nil {
		return nil, err
	}

	err = m.store.ReleaseReservation(ctx, item.ID, viewerHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("item is not reserved: %w", domain.ErrNotFound)
		}
		if errors.Is(err, domain.ErrForbidden) {
			return nil, fmt.Errorf("reservation held by another viewer: %w", domain.ErrForbidden)
		}
		return nil, err
	}

	m.publish(ctx, domain.NewWishlistEvent(domain.EventReservationChanged, wishlist.PublicID, m.clock.Now(), map[string]interface{}{
		"item_id":  item.ID,
		"reserved": false,
	}))

	return &Result{ItemID: item.ID, Reserved: false}, nil
}

// publish sends a committed event to the broker. The write already committed,
// so failures are logged and swallowed; live clients resync on reconnect.
func (m *manager) publish(ctx context.Context, event *domain.Event) {
	if err := m.publisher.PublishEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Failed to publish event"),
			zap.String("eventType", string(event.Type)),
			zap.String("room", event.Room()))
	}
}
