package schema

import (
	"time"
)

// ViewerAccount represents the viewer_accounts table - the spending balance of
// an anonymous viewer, created lazily on first debit or credit.
type ViewerAccount struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ViewerTokenHash is the hashed opaque viewer identity the account is keyed by
	ViewerTokenHash string `gorm:"column:viewer_token_hash;not null;uniqueIndex;type:text"`
	// BalanceCents is the spending balance in reference-currency cents
	BalanceCents int64 `gorm:"column:balance_cents;not null;default:100000"`
	// CreatedAt is the timestamp when this account was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this account was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ViewerAccount model
func (ViewerAccount) TableName() string {
	return "viewer_accounts"
}
