package dto

import (
	"time"

	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/store"
	"github.com/wishbox/wishbox/internal/store/schema"
)

// CreateWishlistRequest is the payload for creating a wishlist
type CreateWishlistRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	Currency    string  `json:"currency"`
	IsPublic    *bool   `json:"is_public"`
}

// CreateItemRequest is the payload for adding an item to a wishlist
type CreateItemRequest struct {
	Name               string  `json:"name" binding:"required,max=200"`
	URL                *string `json:"url"`
	ImageURL           *string `json:"image_url"`
	PriceCents         int64   `json:"price_cents" binding:"required,gt=0"`
	AllowContributions bool    `json:"allow_contributions"`
	Notes              *string `json:"notes"`
}

// UpdateItemRequest is the payload for a partial item update; absent fields
// stay unchanged
type UpdateItemRequest struct {
	Name               *string `json:"name"`
	URL                *string `json:"url"`
	ImageURL           *string `json:"image_url"`
	PriceCents         *int64  `json:"price_cents"`
	AllowContributions *bool   `json:"allow_contributions"`
	Notes              *string `json:"notes"`
}

// ReorderItemsRequest carries the full desired item ordering
type ReorderItemsRequest struct {
	ItemIDs []int64 `json:"item_ids" binding:"required,min=1"`
}

// ContributeRequest is the payload for contributing toward an item
type ContributeRequest struct {
	AmountCents int64   `json:"amount_cents" binding:"required,gt=0"`
	Message     *string `json:"message"`
}

// ItemResponse is an item with its funding and reservation state as seen by
// one viewer
type ItemResponse struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	URL                *string    `json:"url,omitempty"`
	ImageURL           *string    `json:"image_url,omitempty"`
	PriceCents         int64      `json:"price_cents"`
	AllowContributions bool       `json:"allow_contributions"`
	Position           int32      `json:"position"`
	Notes              *string    `json:"notes,omitempty"`
	IsArchived         bool       `json:"is_archived"`
	CollectedCents     int64      `json:"collected_cents"`
	RemainingCents     int64      `json:"remaining_cents"`
	MineCents          int64      `json:"mine_cents"`
	Reserved           bool       `json:"reserved"`
	ReservedByMe       bool       `json:"reserved_by_me"`
	ReservedAt         *time.Time `json:"reserved_at,omitempty"`
}

// WishlistResponse is a wishlist with its items
type WishlistResponse struct {
	ID          int64           `json:"id,omitempty"`
	PublicID    string          `json:"public_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Currency    domain.Currency `json:"currency"`
	IsPublic    bool            `json:"is_public"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []ItemResponse  `json:"items"`
}

// WishlistSummaryResponse is a wishlist row in the owner's listing
type WishlistSummaryResponse struct {
	ID        int64           `json:"id"`
	PublicID  string          `json:"public_id"`
	Title     string          `json:"title"`
	Currency  domain.Currency `json:"currency"`
	IsPublic  bool            `json:"is_public"`
	ItemCount int64           `json:"item_count"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReservationResponse reports an item's reservation state after a reserve or
// unreserve call
type ReservationResponse struct {
	ItemID       int64      `json:"item_id"`
	Reserved     bool       `json:"reserved"`
	ReservedByMe bool       `json:"reserved_by_me"`
	ReservedAt   *time.Time `json:"reserved_at,omitempty"`
}

// ContributionResponse reports a committed contribution with refreshed
// aggregates
type ContributionResponse struct {
	ContributionID  int64     `json:"contribution_id"`
	ItemID          int64     `json:"item_id"`
	AmountCents     int64     `json:"amount_cents"`
	ChargedUSDCents int64     `json:"charged_usd_cents"`
	CollectedCents  int64     `json:"collected_cents"`
	RemainingCents  int64     `json:"remaining_cents"`
	MineCents       int64     `json:"mine_cents"`
	BalanceCents    int64     `json:"balance_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

// ArchiveResponse reports what deleting an item did
type ArchiveResponse struct {
	ItemID        int64 `json:"item_id"`
	Archived      bool  `json:"archived"`
	Deleted       bool  `json:"deleted"`
	RefundedCents int64 `json:"refunded_cents"`
}

// BalanceResponse is a spending balance in reference-currency cents
type BalanceResponse struct {
	BalanceCents int64  `json:"balance_cents"`
	Currency     string `json:"currency"`
}

// NotificationResponse is one persisted notification
type NotificationResponse struct {
	ID         int64      `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Body       *string    `json:"body,omitempty"`
	Meta       any        `json:"meta,omitempty"`
	WishlistID *int64     `json:"wishlist_id,omitempty"`
	ItemID     *int64     `json:"item_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

// NotificationListResponse is the notifications listing with the unread count
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// FromItemAggregate maps a store aggregate to its response shape
func FromItemAggregate(agg store.ItemAggregate) ItemResponse {
	remaining := agg.Item.PriceCents - agg.CollectedCents
	if remaining < 0 {
		remaining = 0
	}
	return ItemResponse{
		ID:                 agg.Item.ID,
		Name:               agg.Item.Name,
		URL:                agg.Item.URL,
		ImageURL:           agg.Item.ImageURL,
		PriceCents:         agg.Item.PriceCents,
		AllowContributions: agg.Item.AllowContributions,
		Position:           agg.Item.Position,
		Notes:              agg.Item.Notes,
		IsArchived:         agg.Item.IsArchived,
		CollectedCents:     agg.CollectedCents,
		RemainingCents:     remaining,
		MineCents:          agg.MineCents,
		Reserved:           agg.Reserved,
		ReservedByMe:       agg.ReservedByMe,
		ReservedAt:         agg.ReservedAt,
	}
}

// FromWishlist maps a wishlist and its item aggregates to the response shape.
// includeID controls whether the internal id is exposed (owner views only).
func FromWishlist(w *schema.Wishlist, aggregates []store.ItemAggregate, includeID bool) WishlistResponse {
	items := make([]ItemResponse, 0, len(aggregates))
	for _, agg := range aggregates {
		if agg.Item.IsArchived {
			continue
		}
		items = append(items, FromItemAggregate(agg))
	}

	resp := WishlistResponse{
		PublicID:    w.PublicID,
		Title:       w.Title,
		Description: w.Description,
		Currency:    w.Currency,
		IsPublic:    w.IsPublic,
		CreatedAt:   w.CreatedAt,
		Items:       items,
	}
	if includeID {
		resp.ID = w.ID
	}
	return resp
}

// FromNotification maps a notification row to its response shape
func FromNotification(n schema.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         n.ID,
		Type:       string(n.Type),
		Title:      n.Title,
		Body:       n.Body,
		WishlistID: n.WishlistID,
		ItemID:     n.ItemID,
		CreatedAt:  n.CreatedAt,
		ReadAt:     n.ReadAt,
	}
	if len(n.Meta) > 0 {
		resp.Meta = n.Meta
	}
	return resp
}
