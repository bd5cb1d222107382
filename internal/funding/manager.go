package funding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/fx"
	"github.com/wishbox/wishbox/internal/logger"
	"github.com/wishbox/wishbox/internal/messaging"
	"github.com/wishbox/wishbox/internal/store"
	"github.com/wishbox/wishbox/internal/store/schema"
)

// ContributeParams holds the inputs of a contribution attempt
type ContributeParams struct {
	PublicID          string
	ItemID            int64
	ViewerHash        string
	ContributorUserID *int64
	AmountCents       int64
	Message           *string
}

// ContributeResult reports the committed contribution with refreshed aggregates
type ContributeResult struct {
	Contribution    *schema.Contribution
	CollectedCents  int64
	MineCents       int64
	RemainingCents  int64
	NewBalanceCents int64
	ChargedUSDCents int64
}

// ArchiveResult reports what archiving an item did
type ArchiveResult struct {
	// Archived is true when the item was soft-deleted to preserve ledger
	// history; false when it had no activity and was removed outright
	Archived bool
	// RefundedCents is the sum of display-currency amounts refunded
	RefundedCents int64
}

// Manager defines the interface for funding operations
//
//go:generate mockgen -source=manager.go -destination=../mocks/funding.go -package=mocks -mock_names=Manager=MockFundingManager
type Manager interface {
	// Contribute debits the contributor's balance and records a contribution
	// toward an item's funding goal
	Contribute(ctx context.Context, params ContributeParams) (*ContributeResult, error)
	// ArchiveOrDelete archives an item after refunding all open contributions,
	// or hard-deletes it when it has no reservation or contribution history
	ArchiveOrDelete(ctx context.Context, ownerID int64, itemID int64) (*ArchiveResult, error)
}

type manager struct {
	store     store.Store
	converter fx.Converter
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewManager creates a new funding manager
func NewManager(st store.Store, converter fx.Converter, pub messaging.Publisher, clock adapter.Clock) Manager {
	return &manager{
		store:     st,
		converter: converter,
		publisher: pub,
		clock:     clock,
	}
}

// Contribute debits the contributor and records the contribution. Preconditions
// are checked in a fixed order so each failure is distinct; the funding cap is
// re-validated inside the store transaction under the item row lock, making the
// pre-checks here an optimization rather than the safety mechanism.
func (m *manager) Contribute(ctx context.Context, params ContributeParams) (*ContributeResult, error) {
	if params.AmountCents < domain.MinContributionCents {
		return nil, fmt.Errorf("minimum contribution is %d: %w", domain.MinContributionCents, domain.ErrInvalidAmount)
	}

	wishlist, err := m.store.GetWishlistByPublicID(ctx, params.PublicID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil || !wishlist.IsPublic {
		return nil, domain.ErrNotFound
	}

	item, err := m.store.GetItemByID(ctx, params.ItemID)
	if err != nil {
		return nil, err
	}
	if item != nil && item.WishlistID == wishlist.ID && !item.AllowContributions {
		return nil, fmt.Errorf("item does not accept contributions: %w", domain.ErrNotAllowed)
	}
	if item == nil || item.WishlistID != wishlist.ID || item.IsArchived {
		return nil, domain.ErrNotFound
	}

	// Unlocked pre-check of the funding cap; the store repeats it under lock
	collected, err := m.store.CollectedCents(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	remaining := item.PriceCents - collected
	if remaining <= 0 {
		return nil, &domain.GoalReachedError{PriceCents: item.PriceCents, CollectedCents: collected}
	}
	if params.AmountCents > remaining {
		return nil, &domain.ExceedsRemainingError{RemainingCents: remaining}
	}

	// Rate lookup happens before any row lock is taken
	chargedCents, err := m.converter.ConvertToUSDCents(ctx, params.AmountCents, wishlist.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %d %s: %w", params.AmountCents, wishlist.Currency, err)
	}

	input := store.ContributeInput{
		ItemID:            item.ID,
		ViewerTokenHash:   params.ViewerHash,
		ContributorUserID: params.ContributorUserID,
		AmountCents:       params.AmountCents,
		ChargedUSDCents:   chargedCents,
		Message:           params.Message,
	}

	ownerIsContributor := params.ContributorUserID != nil && *params.ContributorUserID == wishlist.OwnerID
	if !ownerIsContributor {
		input.OwnerNotification = m.buildOwnerNotification(wishlist, item, params)
	}

	outcome, err := m.store.Contribute(ctx, input)
	if err != nil {
		return nil, err
	}

	// Post-commit fan-out; a publish failure never unwinds the ledger
	now := m.clock.Now()
	if params.ContributorUserID != nil {
		m.publish(ctx, domain.NewUserEvent(domain.EventBalanceUpdated, *params.ContributorUserID, now, map[string]interface{}{
			"balance_cents": outcome.NewBalanceCents,
			"delta_cents":   -chargedCents,
		}))
	}
	if !ownerIsContributor {
		unread, err := m.store.UnreadNotificationCount(ctx, wishlist.OwnerID)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to count unread notifications"))
		} else {
			m.publish(ctx, domain.NewUserEvent(domain.EventNotificationsUpdated, wishlist.OwnerID, now, map[string]interface{}{
				"unread_count": unread,
			}))
		}
	}
	m.publish(ctx, domain.NewWishlistEvent(domain.EventContributionChanged, wishlist.PublicID, now, map[string]interface{}{
		"item_id":         item.ID,
		"collected_cents": outcome.CollectedCents,
		"remaining_cents": item.PriceCents - outcome.CollectedCents,
	}))

	return &ContributeResult{
		Contribution:    outcome.Contribution,
		CollectedCents:  outcome.CollectedCents,
		MineCents:       outcome.MineCents,
		RemainingCents:  item.PriceCents - outcome.CollectedCents,
		NewBalanceCents: outcome.NewBalanceCents,
		ChargedUSDCents: chargedCents,
	}, nil
}

// ArchiveOrDelete archives an item after refunding all open contributions, or
// hard-deletes it when nothing ever referenced it
func (m *manager) ArchiveOrDelete(ctx context.Context, ownerID int64, itemID int64) (*ArchiveResult, error) {
	item, wishlist, err := m.store.GetOwnedItem(ctx, itemID, ownerID)
	if err != nil {
		return nil, err
	}

	outcome, err := m.store.ArchiveItemWithRefund(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	m.publish(ctx, domain.NewWishlistEvent(domain.EventItemArchived, wishlist.PublicID, now, map[string]interface{}{
		"item_id":        item.ID,
		"archived":       outcome.Archived,
		"refunded_cents": outcome.RefundedCents,
	}))
	if outcome.RefundedCents > 0 {
		m.publish(ctx, domain.NewWishlistEvent(domain.EventContributionChanged, wishlist.PublicID, now, map[string]interface{}{
			"item_id":         item.ID,
			"collected_cents": int64(0),
			"remaining_cents": item.PriceCents,
		}))
	}
	for userID, balance := range outcome.UserBalances {
		m.publish(ctx, domain.NewUserEvent(domain.EventBalanceUpdated, userID, now, map[string]interface{}{
			"balance_cents": balance,
		}))
	}

	return &ArchiveResult{Archived: outcome.Archived, RefundedCents: outcome.RefundedCents}, nil
}

func (m *manager) buildOwnerNotification(wishlist *schema.Wishlist, item *schema.WishlistItem, params ContributeParams) *store.NotificationInput {
	body := fmt.Sprintf("%s received a %.2f %s contribution",
		item.Name, float64(params.AmountCents)/100, wishlist.Currency)
	meta := fmt.Sprintf(`{"item_id":%d,"amount_cents":%d,"currency":%q}`,
		item.ID, params.AmountCents, wishlist.Currency)
	wishlistID := wishlist.ID
	itemID := item.ID
	return &store.NotificationInput{
		UserID:     wishlist.OwnerID,
		WishlistID: &wishlistID,
		ItemID:     &itemID,
		Type:       schema.NotificationContributionReceived,
		Title:      "Contribution received",
		Body:       &body,
		Meta:       []byte(meta),
	}
}

// publish sends a committed event to the broker. Failures are logged and
// swallowed; live clients resync on reconnect.
func (m *manager) publish(ctx context.Context, event *domain.Event) {
	if err := m.publisher.PublishEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Failed to publish event"),
			zap.String("eventType", string(event.Type)),
			zap.String("room", event.Room()))
	}
}
