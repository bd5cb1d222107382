package schema

import (
	"time"

	"github.com/wishbox/wishbox/internal/domain"
)

// Wishlist represents the wishlists table
type Wishlist struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OwnerID references the owning user
	OwnerID int64 `gorm:"column:owner_id;not null;index:ix_wishlists_owner"`
	// PublicID is the opaque identifier visitors use; also the public room name
	PublicID string `gorm:"column:public_id;not null;uniqueIndex;type:text"`
	// Title is the wishlist heading
	Title string `gorm:"column:title;not null;type:text"`
	// Description is the optional wishlist description
	Description *string `gorm:"column:description;type:text"`
	// Currency is the display currency for item prices and contributions
	Currency domain.Currency `gorm:"column:currency;not null;default:USD;type:text"`
	// IsPublic controls whether anonymous visitors may view and act on the list
	IsPublic bool `gorm:"column:is_public;not null;default:true"`
	// CreatedAt is the timestamp when this wishlist was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this wishlist was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Wishlist model
func (Wishlist) TableName() string {
	return "wishlists"
}
