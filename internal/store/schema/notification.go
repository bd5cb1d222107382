package schema

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationType identifies the kind of persisted notification
type NotificationType string

const (
	// NotificationContributionReceived is created for the item owner when
	// someone contributes toward one of their items
	NotificationContributionReceived NotificationType = "contribution.received"
)

// Notification represents the notifications table
type Notification struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID references the recipient
	UserID int64 `gorm:"column:user_id;not null;index:ix_notifications_user_created,priority:1"`
	// WishlistID optionally references the related wishlist
	WishlistID *int64 `gorm:"column:wishlist_id"`
	// ItemID optionally references the related item
	ItemID *int64 `gorm:"column:item_id"`
	// Type identifies the notification kind
	Type NotificationType `gorm:"column:type;not null;type:text"`
	// Title is the rendered headline
	Title string `gorm:"column:title;not null;type:text"`
	// Body is the rendered message body
	Body *string `gorm:"column:body;type:text"`
	// Meta carries additional context as JSON (amount, currency, message)
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
	// CreatedAt is the timestamp when the notification was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:ix_notifications_user_created,priority:2"`
	// ReadAt marks the notification read
	ReadAt *time.Time `gorm:"column:read_at;type:timestamptz"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
