package schema

import (
	"time"
)

// Reservation represents the reservations table. At most one row per item may
// have a null released_at; the partial unique index ux_reservations_item_active
// arbitrates concurrent inserts.
type Reservation struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ItemID references the reserved item
	ItemID int64 `gorm:"column:item_id;not null;index:ix_reservations_item_released,priority:1"`
	// ViewerTokenHash is the hashed opaque identity of the reserving viewer
	ViewerTokenHash string `gorm:"column:viewer_token_hash;not null;type:text"`
	// CreatedAt is the timestamp when the reservation was taken
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// ReleasedAt marks the reservation released; history is retained
	ReleasedAt *time.Time `gorm:"column:released_at;type:timestamptz;index:ix_reservations_item_released,priority:2"`

	// Associations
	Item WishlistItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}

// Active reports whether the reservation still holds its item
func (r *Reservation) Active() bool {
	return r.ReleasedAt == nil
}
