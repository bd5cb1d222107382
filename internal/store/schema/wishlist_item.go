package schema

import (
	"time"
)

// WishlistItem represents the wishlist_items table
type WishlistItem struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// WishlistID references the owning wishlist
	WishlistID int64 `gorm:"column:wishlist_id;not null;index:ix_wishlist_items_wishlist_position,priority:1"`
	// Name is the item title
	Name string `gorm:"column:name;not null;type:text"`
	// URL is the optional product link
	URL *string `gorm:"column:url;type:text"`
	// ImageURL is the optional preview image link
	ImageURL *string `gorm:"column:image_url;type:text"`
	// PriceCents is the item price in the wishlist's display currency; the
	// funding cap derives from it
	PriceCents int64 `gorm:"column:price_cents;not null"`
	// AllowContributions controls whether the item can be crowdfunded
	AllowContributions bool `gorm:"column:allow_contributions;not null;default:false"`
	// Position is the owner-defined ordering within the wishlist
	Position int32 `gorm:"column:position;not null;default:0;index:ix_wishlist_items_wishlist_position,priority:2"`
	// Notes is an optional free-form note
	Notes *string `gorm:"column:notes;type:text"`
	// IsArchived marks the item soft-deleted; set instead of deleting once the
	// item has reservations or unrefunded contributions
	IsArchived bool `gorm:"column:is_archived;not null;default:false"`
	// CreatedAt is the timestamp when this item was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this item was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Wishlist Wishlist `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the WishlistItem model
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
