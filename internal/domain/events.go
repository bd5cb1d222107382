package domain

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"
)

// EventType identifies the kind of realtime event
type EventType string

const (
	// EventReservationChanged signals that an item's reservation state changed
	EventReservationChanged EventType = "reservation.changed"
	// EventContributionChanged signals that an item's collected total changed
	EventContributionChanged EventType = "contribution.changed"
	// EventItemArchived signals that an item was archived or deleted
	EventItemArchived EventType = "item.archived"
	// EventBalanceUpdated signals that a user's reference-currency balance changed
	EventBalanceUpdated EventType = "balance.updated"
	// EventNotificationsUpdated signals that a user's unread notification count changed
	EventNotificationsUpdated EventType = "notifications.updated"
)

// Event is the envelope fanned out to live connections and across processes.
// Either WishlistPublicID or UserID is set, never both.
type Event struct {
	ID               string         `json:"event_id"`
	Type             EventType      `json:"type"`
	WishlistPublicID string         `json:"wishlist_public_id,omitempty"`
	UserID           int64          `json:"user_id,omitempty"`
	ServerTS         time.Time      `json:"server_ts"`
	Origin           string         `json:"origin,omitempty"`
	Data             datatypes.JSONMap `json:"data"`
}

// Room returns the fan-out addressing unit the event targets.
func (e *Event) Room() string {
	if e.UserID != 0 {
		return UserRoom(e.UserID)
	}
	return e.WishlistPublicID
}

// UserRoom builds the private room identifier for a registered user.
func UserRoom(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// NewWishlistEvent builds an event addressed at a wishlist's public room.
func NewWishlistEvent(eventType EventType, publicID string, now time.Time, data map[string]interface{}) *Event {
	return &Event{
		ID:               ulid.Make().String(),
		Type:             eventType,
		WishlistPublicID: publicID,
		ServerTS:         now.UTC(),
		Data:             data,
	}
}

// NewUserEvent builds an event addressed at a user's private room.
func NewUserEvent(eventType EventType, userID int64, now time.Time, data map[string]interface{}) *Event {
	return &Event{
		ID:       ulid.Make().String(),
		Type:     eventType,
		UserID:   userID,
		ServerTS: now.UTC(),
		Data:     data,
	}
}
