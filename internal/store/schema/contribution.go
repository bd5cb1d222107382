package schema

import (
	"time"
)

// Contribution represents the contributions table. A row is never deleted;
// refunding closes it by setting refunded_at.
type Contribution struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ItemID references the funded item
	ItemID int64 `gorm:"column:item_id;not null;index:ix_contributions_item"`
	// ContributorUserID links a registered user when the contributor was logged in
	ContributorUserID *int64 `gorm:"column:contributor_user_id;index:ix_contributions_user"`
	// ViewerTokenHash is the hashed opaque identity of the contributing viewer
	ViewerTokenHash string `gorm:"column:viewer_token_hash;not null;type:text"`
	// AmountCents is the contribution in the wishlist's display currency
	AmountCents int64 `gorm:"column:amount_cents;not null"`
	// ChargedUSDCents is the amount actually debited, in reference-currency
	// cents, recorded at contribution time and reused verbatim on refund
	ChargedUSDCents int64 `gorm:"column:charged_usd_cents;not null;default:0"`
	// Message is the optional contributor message
	Message *string `gorm:"column:message;type:text"`
	// CreatedAt is the timestamp when the contribution was made
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// RefundedAt marks the contribution permanently closed
	RefundedAt *time.Time `gorm:"column:refunded_at;type:timestamptz"`

	// Associations
	Item WishlistItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Contribution model
func (Contribution) TableName() string {
	return "contributions"
}

// RefundCents returns the reference-currency amount a refund must credit.
// Legacy rows imported without a recorded conversion fall back to the raw
// display-currency amount.
func (c *Contribution) RefundCents() int64 {
	if c.ChargedUSDCents > 0 {
		return c.ChargedUSDCents
	}
	return c.AmountCents
}
