package schema

import (
	"time"
)

// StartingBalanceCents is the reference-currency balance every new spending
// account begins with, registered or anonymous.
const StartingBalanceCents int64 = 100_000

// User represents the users table - registered wishlist owners and contributors
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Email is the unique login identifier
	Email string `gorm:"column:email;not null;uniqueIndex;type:text"`
	// PasswordHash is the stored credential digest (issued elsewhere, opaque here)
	PasswordHash string `gorm:"column:password_hash;not null;type:text"`
	// Nickname is the optional display name
	Nickname *string `gorm:"column:nickname;type:text"`
	// BalanceCents is the spending balance in reference-currency cents
	BalanceCents int64 `gorm:"column:balance_cents;not null;default:100000"`
	// CreatedAt is the timestamp when this user was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this user was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
