package store

import (
	"context"
	"time"

	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/store/schema"
)

// CreateUserInput holds the fields for creating a registered user
type CreateUserInput struct {
	Email        string
	PasswordHash string
	Nickname     *string
}

// CreateWishlistInput holds the fields for creating a wishlist
type CreateWishlistInput struct {
	OwnerID     int64
	PublicID    string
	Title       string
	Description *string
	Currency    domain.Currency
	IsPublic    bool
}

// CreateItemInput holds the fields for creating a wishlist item
type CreateItemInput struct {
	WishlistID         int64
	Name               string
	URL                *string
	ImageURL           *string
	PriceCents         int64
	AllowContributions bool
	Position           int32
	Notes              *string
}

// ItemUpdate lists the mutable item fields. Nil means "leave unchanged";
// updates are applied field by field, never by attribute name.
type ItemUpdate struct {
	Name               *string
	URL                *string
	ImageURL           *string
	PriceCents         *int64
	AllowContributions *bool
	Position           *int32
	Notes              *string
}

// NotificationInput holds a notification row inserted inside a ledger transaction
type NotificationInput struct {
	UserID     int64
	WishlistID *int64
	ItemID     *int64
	Type       schema.NotificationType
	Title      string
	Body       *string
	Meta       []byte
}

// ContributeInput holds the parameters of the atomic contribution write.
// ChargedUSDCents must already be converted; the store never calls out to the
// rate gateway while holding row locks.
type ContributeInput struct {
	ItemID            int64
	ViewerTokenHash   string
	ContributorUserID *int64
	AmountCents       int64
	ChargedUSDCents   int64
	Message           *string
	OwnerNotification *NotificationInput
}

// ContributeOutcome reports the committed contribution with the read-aggregates
// recomputed inside the same transaction
type ContributeOutcome struct {
	Contribution    *schema.Contribution
	CollectedCents  int64
	MineCents       int64
	NewBalanceCents int64
}

// ArchiveOutcome reports what archiving an item did
type ArchiveOutcome struct {
	// Archived is true when the item was soft-deleted; false when it had no
	// activity and was removed outright
	Archived bool
	// RefundedCents is the sum of display-currency amounts refunded
	RefundedCents int64
	// UserBalances maps registered contributor ids to their balance after the
	// refund credits, for post-commit balance events
	UserBalances map[int64]int64
}

// ItemAggregate is an item row joined with its funding and reservation state
type ItemAggregate struct {
	Item            schema.WishlistItem
	CollectedCents  int64
	MineCents       int64
	Reserved        bool
	ReservedByMe    bool
	ReservedAt      *time.Time
	ReservedByHash  string
}

// WishlistSummary is a wishlist row with its item count
type WishlistSummary struct {
	Wishlist  schema.Wishlist
	ItemCount int64
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateUser creates a registered user with the starting balance
	CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error)
	// GetUserByID retrieves a user by id, nil when absent
	GetUserByID(ctx context.Context, id int64) (*schema.User, error)
	// GetUserByEmail retrieves a user by email, nil when absent
	GetUserByEmail(ctx context.Context, email string) (*schema.User, error)

	// CreateWishlist creates a wishlist
	CreateWishlist(ctx context.Context, input CreateWishlistInput) (*schema.Wishlist, error)
	// GetWishlistByID retrieves a wishlist by id, nil when absent
	GetWishlistByID(ctx context.Context, id int64) (*schema.Wishlist, error)
	// GetWishlistByPublicID retrieves a wishlist by its public identifier, nil when absent
	GetWishlistByPublicID(ctx context.Context, publicID string) (*schema.Wishlist, error)
	// ListWishlistsByOwner lists a user's wishlists with item counts
	ListWishlistsByOwner(ctx context.Context, ownerID int64) ([]WishlistSummary, error)

	// CreateItem creates a wishlist item
	CreateItem(ctx context.Context, input CreateItemInput) (*schema.WishlistItem, error)
	// GetItemByID retrieves an item by id, nil when absent
	GetItemByID(ctx context.Context, id int64) (*schema.WishlistItem, error)
	// GetOwnedItem retrieves an item together with its wishlist, requiring ownership
	GetOwnedItem(ctx context.Context, itemID int64, ownerID int64) (*schema.WishlistItem, *schema.Wishlist, error)
	// UpdateItem applies an explicit partial update to an item
	UpdateItem(ctx context.Context, itemID int64, update ItemUpdate) (*schema.WishlistItem, error)
	// ReorderItems rewrites the position column for the given ordering
	ReorderItems(ctx context.Context, wishlistID int64, orderedItemIDs []int64) error
	// ListItemsWithAggregates returns a wishlist's items joined with funding and
	// reservation aggregates; viewerHash may be empty
	ListItemsWithAggregates(ctx context.Context, wishlistID int64, viewerHash string) ([]ItemAggregate, error)

	// GetActiveReservation retrieves the item's unreleased reservation, nil when none
	GetActiveReservation(ctx context.Context, itemID int64) (*schema.Reservation, error)
	// CreateReservation inserts an active reservation; the partial unique index
	// arbitrates races and losers surface domain.ErrConflict
	CreateReservation(ctx context.Context, itemID int64, viewerHash string) (*schema.Reservation, error)
	// ReleaseReservation releases the viewer's active reservation
	ReleaseReservation(ctx context.Context, itemID int64, viewerHash string) error

	// Contribute runs the atomic funding write: item lock, cap re-validation,
	// balance lock and debit, contribution insert
	Contribute(ctx context.Context, input ContributeInput) (*ContributeOutcome, error)
	// ArchiveItemWithRefund refunds all open contributions and archives the item,
	// or hard-deletes it when it has no activity; one transaction either way
	ArchiveItemWithRefund(ctx context.Context, itemID int64) (*ArchiveOutcome, error)
	// CollectedCents sums the item's unrefunded contribution amounts
	CollectedCents(ctx context.Context, itemID int64) (int64, error)

	// GetViewerAccount retrieves an anonymous spending account, nil when absent
	GetViewerAccount(ctx context.Context, viewerHash string) (*schema.ViewerAccount, error)

	// ListNotifications lists a user's notifications, newest first
	ListNotifications(ctx context.Context, userID int64, limit int) ([]schema.Notification, error)
	// UnreadNotificationCount counts a user's unread notifications
	UnreadNotificationCount(ctx context.Context, userID int64) (int64, error)
	// MarkNotificationsRead marks all of a user's notifications read
	MarkNotificationsRead(ctx context.Context, userID int64) error
}
