package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance. The *gorm.DB must be
// opened with TranslateError enabled so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// wrapStoreErr maps infrastructure failures onto domain.ErrStoreUnavailable so
// callers can distinguish them from ledger precondition failures.
func wrapStoreErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUnavailable reports whether the statement failed for infrastructure
// reasons rather than data-dependent ones: cancelled work, a dead connection,
// a lock that never came. Postgres class 08 is connection exceptions, 57P* is
// server shutdown, 55P03 is lock_not_available.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "57P") ||
			pgErr.Code == "55P03"
	}
	return false
}

// retryRead reissues an idempotent read once when the first attempt failed
// because the store was unavailable. Mutations never retry: their transaction
// may have reached the server even when the reply did not.
func retryRead[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	out, err := fn()
	if err == nil || !errors.Is(err, domain.ErrStoreUnavailable) || ctx.Err() != nil {
		return out, err
	}
	return fn()
}

// CreateUser creates a registered user with the starting balance
func (s *pgStore) CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error) {
	user := schema.User{
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Nickname:     input.Nickname,
		BalanceCents: schema.StartingBalanceCents,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return nil, wrapStoreErr("failed to create user", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by id
func (s *pgStore) GetUserByID(ctx context.Context, id int64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreErr("failed to get user", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (s *pgStore) GetUserByEmail(ctx context.Context, email string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreErr("failed to get user by email", err)
	}
	return &user, nil
}

// CreateWishlist creates a wishlist
func (s *pgStore) CreateWishlist(ctx context.Context, input CreateWishlistInput) (*schema.Wishlist, error) {
	wishlist := schema.Wishlist{
		OwnerID:     input.OwnerID,
		PublicID:    input.PublicID,
		Title:       input.Title,
		Description: input.Description,
		Currency:    input.Currency,
		IsPublic:    input.IsPublic,
	}
	if err := s.db.WithContext(ctx).Create(&wishlist).Error; err != nil {
		return nil, wrapStoreErr("failed to create wishlist", err)
	}
	return &wishlist, nil
}

// GetWishlistByID retrieves a wishlist by id
func (s *pgStore) GetWishlistByID(ctx context.Context, id int64) (*schema.Wishlist, error) {
	var wishlist schema.Wishlist
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&wishlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreErr("failed to get wishlist", err)
	}
	return &wishlist, nil
}

// GetWishlistByPublicID retrieves a wishlist by its public identifier
func (s *pgStore) GetWishlistByPublicID(ctx context.Context, publicID string) (*schema.Wishlist, error) {
	return retryRead(ctx, func() (*schema.Wishlist, error) {
		var wishlist schema.Wishlist
		err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&wishlist).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, wrapStoreErr("failed to get wishlist by public id", err)
		}
		return &wishlist, nil
	})
}

// ListWishlistsByOwner lists a user's wishlists with item counts
func (s *pgStore) ListWishlistsByOwner(ctx context.Context, ownerID int64) ([]WishlistSummary, error) {
	var wishlists []schema.Wishlist
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&wishlists).Error
	if err != nil {
		return nil, wrapStoreErr("failed to list wishlists", err)
	}

	summaries := make([]WishlistSummary, 0, len(wishlists))
	for _, w := range wishlists {
		var count int64
		err := s.db.WithContext(ctx).Model(&schema.WishlistItem{}).
			Where("wishlist_id = ? AND is_archived = FALSE", w.ID).
			Count(&count).Error
		if err != nil {
			return nil, wrapStoreErr("failed to count wishlist items", err)
		}
		summaries = append(summaries, WishlistSummary{Wishlist: w, ItemCount: count})
	}
	return summaries, nil
}

// CreateItem creates a wishlist item
func (s *pgStore) CreateItem(ctx context.Context, input CreateItemInput) (*schema.WishlistItem, error) {
	item := schema.WishlistItem{
		WishlistID:         input.WishlistID,
		Name:               input.Name,
		URL:                input.URL,
		ImageURL:           input.ImageURL,
		PriceCents:         input.PriceCents,
		AllowContributions: input.AllowContributions,
		Position:           input.Position,
		Notes:              input.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, wrapStoreErr("failed to create item", err)
	}
	return &item, nil
}

// GetItemByID retrieves an item by id
func (s *pgStore) GetItemByID(ctx context.Context, id int64) (*schema.WishlistItem, error) {
	return retryRead(ctx, func() (*schema.WishlistItem, error) {
		var item schema.WishlistItem
		err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, wrapStoreErr("failed to get item", err)
		}
		return &item, nil
	})
}

// GetOwnedItem retrieves an item together with its wishlist, requiring ownership
func (s *pgStore) GetOwnedItem(ctx context.Context, itemID int64, ownerID int64) (*schema.WishlistItem, *schema.Wishlist, error) {
	item, err := s.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrNotFound
	}

	wishlist, err := s.GetWishlistByID(ctx, item.WishlistID)
	if err != nil {
		return nil, nil, err
	}
	if wishlist == nil || wishlist.OwnerID != ownerID {
		return nil, nil, domain.ErrNotFound
	}
	return item, wishlist, nil
}

// UpdateItem applies an explicit partial update to an item
func (s *pgStore) UpdateItem(ctx context.Context, itemID int64, update ItemUpdate) (*schema.WishlistItem, error) {
	columns := map[string]interface{}{}
	if update.Name != nil {
		columns["name"] = *update.Name
	}
	if update.URL != nil {
		columns["url"] = *update.URL
	}
	if update.ImageURL != nil {
		columns["image_url"] = *update.ImageURL
	}
	if update.PriceCents != nil {
		columns["price_cents"] = *update.PriceCents
	}
	if update.AllowContributions != nil {
		columns["allow_contributions"] = *update.AllowContributions
	}
	if update.Position != nil {
		columns["position"] = *update.Position
	}
	if update.Notes != nil {
		columns["notes"] = *update.Notes
	}

	var item schema.WishlistItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", itemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to lock item: %w", err)
		}

		if len(columns) == 0 {
			return nil
		}
		columns["updated_at"] = time.Now().UTC()

		if err := tx.Model(&schema.WishlistItem{}).Where("id = ?", itemID).Updates(columns).Error; err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		return tx.Where("id = ?", itemID).First(&item).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, wrapStoreErr("failed to update item", err)
	}
	return &item, nil
}

// ReorderItems rewrites the position column for the given ordering
func (s *pgStore) ReorderItems(ctx context.Context, wishlistID int64, orderedItemIDs []int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, itemID := range orderedItemIDs {
			result := tx.Model(&schema.WishlistItem{}).
				Where("id = ? AND wishlist_id = ?", itemID, wishlistID).
				Update("position", position)
			if result.Error != nil {
				return fmt.Errorf("failed to update position: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return domain.ErrNotFound
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return wrapStoreErr("failed to reorder items", err)
	}
	return nil
}

// ListItemsWithAggregates returns a wishlist's items joined with funding and
// reservation aggregates. Aggregates are unlocked reads; mutations re-validate
// them under the item row lock before writing.
func (s *pgStore) ListItemsWithAggregates(ctx context.Context, wishlistID int64, viewerHash string) ([]ItemAggregate, error) {
	var items []schema.WishlistItem
	err := s.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, wrapStoreErr("failed to list items", err)
	}
	if len(items) == 0 {
		return []ItemAggregate{}, nil
	}

	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	type sumRow struct {
		ItemID int64
		Total  int64
	}

	collected := map[int64]int64{}
	var collectedRows []sumRow
	err = s.db.WithContext(ctx).Model(&schema.Contribution{}).
		Select("item_id, COALESCE(SUM(amount_cents), 0) AS total").
		Where("item_id IN ? AND refunded_at IS NULL", itemIDs).
		Group("item_id").
		Scan(&collectedRows).Error
	if err != nil {
		return nil, wrapStoreErr("failed to sum contributions", err)
	}
	for _, row := range collectedRows {
		collected[row.ItemID] = row.Total
	}

	mine := map[int64]int64{}
	if viewerHash != "" {
		var mineRows []sumRow
		err = s.db.WithContext(ctx).Model(&schema.Contribution{}).
			Select("item_id, COALESCE(SUM(amount_cents), 0) AS total").
			Where("item_id IN ? AND viewer_token_hash = ? AND refunded_at IS NULL", itemIDs, viewerHash).
			Group("item_id").
			Scan(&mineRows).Error
		if err != nil {
			return nil, wrapStoreErr("failed to sum viewer contributions", err)
		}
		for _, row := range mineRows {
			mine[row.ItemID] = row.Total
		}
	}

	var reservations []schema.Reservation
	err = s.db.WithContext(ctx).
		Where("item_id IN ? AND released_at IS NULL", itemIDs).
		Find(&reservations).Error
	if err != nil {
		return nil, wrapStoreErr("failed to load reservations", err)
	}
	active := map[int64]schema.Reservation{}
	for _, r := range reservations {
		active[r.ItemID] = r
	}

	aggregates := make([]ItemAggregate, 0, len(items))
	for _, item := range items {
		agg := ItemAggregate{
			Item:           item,
			CollectedCents: collected[item.ID],
			MineCents:      mine[item.ID],
		}
		if r, ok := active[item.ID]; ok {
			reservedAt := r.CreatedAt
			agg.Reserved = true
			agg.ReservedAt = &reservedAt
			agg.ReservedByHash = r.ViewerTokenHash
			agg.ReservedByMe = viewerHash != "" && r.ViewerTokenHash == viewerHash
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

// GetActiveReservation retrieves the item's unreleased reservation
func (s *pgStore) GetActiveReservation(ctx context.Context, itemID int64) (*schema.Reservation, error) {
	return retryRead(ctx, func() (*schema.Reservation, error) {
		var reservation schema.Reservation
		err := s.db.WithContext(ctx).
			Where("item_id = ? AND released_at IS NULL", itemID).
			First(&reservation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, wrapStoreErr("failed to get active reservation", err)
		}
		return &reservation, nil
	})
}

// CreateReservation inserts an active reservation for the viewer. The partial
// unique index on (item_id) WHERE released_at IS NULL is the arbiter for
// concurrent inserts; the loser gets domain.ErrConflict.
func (s *pgStore) CreateReservation(ctx context.Context, itemID int64, viewerHash string) (*schema.Reservation, error) {
	reservation := schema.Reservation{
		ItemID:          itemID,
		ViewerTokenHash: viewerHash,
	}
	if err := s.db.WithContext(ctx).Create(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("item already reserved: %w", domain.ErrConflict)
		}
		return nil, wrapStoreErr("failed to create reservation", err)
	}
	return &reservation, nil
}

// ReleaseReservation releases the viewer's active reservation
func (s *pgStore) ReleaseReservation(ctx context.Context, itemID int64, viewerHash string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation schema.Reservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("item_id = ? AND released_at IS NULL", itemID).
			First(&reservation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to lock reservation: %w", err)
		}

		if reservation.ViewerTokenHash != viewerHash {
			return domain.ErrForbidden
		}

		now := time.Now().UTC()
		return tx.Model(&schema.Reservation{}).
			Where("id = ?", reservation.ID).
			Update("released_at", now).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
			return err
		}
		return wrapStoreErr("failed to release reservation", err)
	}
	return nil
}

// lockUserBalance acquires the user row exclusively
func lockUserBalance(tx *gorm.DB, userID int64) (*schema.User, error) {
	var user schema.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user balance: %w", err)
	}
	return &user, nil
}

// lockViewerAccount acquires the viewer's spending account exclusively,
// creating it lazily with the starting balance. The insert uses ON CONFLICT DO
// NOTHING so two first-time debits race safely.
func lockViewerAccount(tx *gorm.DB, viewerHash string) (*schema.ViewerAccount, error) {
	var account schema.ViewerAccount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("viewer_token_hash = ?", viewerHash).
		First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to lock viewer account: %w", err)
	}

	fresh := schema.ViewerAccount{
		ViewerTokenHash: viewerHash,
		BalanceCents:    schema.StartingBalanceCents,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "viewer_token_hash"}},
		DoNothing: true,
	}).Create(&fresh).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create viewer account: %w", err)
	}

	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("viewer_token_hash = ?", viewerHash).
		First(&account).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock viewer account after create: %w", err)
	}
	return &account, nil
}

// sumUnrefunded sums the item's unrefunded contribution amounts inside tx
func sumUnrefunded(tx *gorm.DB, itemID int64) (int64, error) {
	var total int64
	err := tx.Model(&schema.Contribution{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("item_id = ? AND refunded_at IS NULL", itemID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum contributions: %w", err)
	}
	return total, nil
}

// Contribute runs the funding write as one transaction. Lock order is fixed:
// item row first, balance row second. The collected total is re-read under the
// item lock so concurrent contributors observe a serial order.
func (s *pgStore) Contribute(ctx context.Context, input ContributeInput) (*ContributeOutcome, error) {
	if input.ChargedUSDCents <= 0 {
		return nil, fmt.Errorf("charged amount must be recorded: %w", domain.ErrConversionFailed)
	}

	var outcome ContributeOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Acquire the item row exclusively
		var item schema.WishlistItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ItemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to lock item: %w", err)
		}
		if !item.AllowContributions {
			return domain.ErrNotAllowed
		}
		if item.IsArchived {
			return domain.ErrNotFound
		}

		// 2. Re-validate the funding cap under the lock
		collected, err := sumUnrefunded(tx, item.ID)
		if err != nil {
			return err
		}
		remaining := item.PriceCents - collected
		if remaining <= 0 {
			return &domain.GoalReachedError{PriceCents: item.PriceCents, CollectedCents: collected}
		}
		if input.AmountCents > remaining {
			return &domain.ExceedsRemainingError{RemainingCents: remaining}
		}

		// 3. Acquire the contributor's balance row and debit
		if input.ContributorUserID != nil {
			user, err := lockUserBalance(tx, *input.ContributorUserID)
			if err != nil {
				return err
			}
			if user.BalanceCents < input.ChargedUSDCents {
				return &domain.InsufficientBalanceError{BalanceCents: user.BalanceCents, ChargedCents: input.ChargedUSDCents}
			}
			outcome.NewBalanceCents = user.BalanceCents - input.ChargedUSDCents
			err = tx.Model(&schema.User{}).
				Where("id = ?", user.ID).
				Updates(map[string]interface{}{
					"balance_cents": gorm.Expr("balance_cents - ?", input.ChargedUSDCents),
					"updated_at":    time.Now().UTC(),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to debit user balance: %w", err)
			}
		} else {
			account, err := lockViewerAccount(tx, input.ViewerTokenHash)
			if err != nil {
				return err
			}
			if account.BalanceCents < input.ChargedUSDCents {
				return &domain.InsufficientBalanceError{BalanceCents: account.BalanceCents, ChargedCents: input.ChargedUSDCents}
			}
			outcome.NewBalanceCents = account.BalanceCents - input.ChargedUSDCents
			err = tx.Model(&schema.ViewerAccount{}).
				Where("id = ?", account.ID).
				Updates(map[string]interface{}{
					"balance_cents": gorm.Expr("balance_cents - ?", input.ChargedUSDCents),
					"updated_at":    time.Now().UTC(),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to debit viewer balance: %w", err)
			}
		}

		// 4. Record the contribution with both amounts
		contribution := schema.Contribution{
			ItemID:            item.ID,
			ContributorUserID: input.ContributorUserID,
			ViewerTokenHash:   input.ViewerTokenHash,
			AmountCents:       input.AmountCents,
			ChargedUSDCents:   input.ChargedUSDCents,
			Message:           input.Message,
		}
		if err := tx.Create(&contribution).Error; err != nil {
			return fmt.Errorf("failed to create contribution: %w", err)
		}
		outcome.Contribution = &contribution

		// 5. Owner notification rides in the same transaction
		if input.OwnerNotification != nil {
			n := input.OwnerNotification
			notification := schema.Notification{
				UserID:     n.UserID,
				WishlistID: n.WishlistID,
				ItemID:     n.ItemID,
				Type:       n.Type,
				Title:      n.Title,
				Body:       n.Body,
				Meta:       datatypes.JSON(n.Meta),
			}
			if err := tx.Create(&notification).Error; err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}
		}

		// 6. Recompute read-aggregates for the response
		outcome.CollectedCents = collected + input.AmountCents
		var mineCents int64
		err = tx.Model(&schema.Contribution{}).
			Select("COALESCE(SUM(amount_cents), 0)").
			Where("item_id = ? AND viewer_token_hash = ? AND refunded_at IS NULL", item.ID, input.ViewerTokenHash).
			Scan(&mineCents).Error
		if err != nil {
			return fmt.Errorf("failed to sum viewer contributions: %w", err)
		}
		outcome.MineCents = mineCents
		return nil
	})
	if err != nil {
		var goalErr *domain.GoalReachedError
		var exceedsErr *domain.ExceedsRemainingError
		var balanceErr *domain.InsufficientBalanceError
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrNotAllowed),
			errors.Is(err, domain.ErrConversionFailed),
			errors.As(err, &goalErr),
			errors.As(err, &exceedsErr),
			errors.As(err, &balanceErr):
			return nil, err
		}
		return nil, wrapStoreErr("failed to contribute", err)
	}
	return &outcome, nil
}

// ArchiveItemWithRefund refunds every open contribution and archives the item,
// or hard-deletes the item when it has no reservation or contribution history.
// The whole batch commits or rolls back as one unit.
func (s *pgStore) ArchiveItemWithRefund(ctx context.Context, itemID int64) (*ArchiveOutcome, error) {
	var outcome ArchiveOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Item row first, balance rows second: same order as Contribute.
		var item schema.WishlistItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", itemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to lock item: %w", err)
		}

		var contributions []schema.Contribution
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("item_id = ? AND refunded_at IS NULL", item.ID).
			Order("id ASC").
			Find(&contributions).Error
		if err != nil {
			return fmt.Errorf("failed to lock contributions: %w", err)
		}

		var reservationCount int64
		err = tx.Model(&schema.Reservation{}).
			Where("item_id = ?", item.ID).
			Count(&reservationCount).Error
		if err != nil {
			return fmt.Errorf("failed to count reservations: %w", err)
		}

		// Refunded contributions are still history; only the unrefunded ones
		// are locked above, so count the rest separately.
		var contributionCount int64
		err = tx.Model(&schema.Contribution{}).
			Where("item_id = ?", item.ID).
			Count(&contributionCount).Error
		if err != nil {
			return fmt.Errorf("failed to count contributions: %w", err)
		}

		if contributionCount == 0 && reservationCount == 0 {
			// No ledger history to preserve
			if err := tx.Delete(&schema.WishlistItem{}, item.ID).Error; err != nil {
				return fmt.Errorf("failed to delete item: %w", err)
			}
			outcome.Archived = false
			return nil
		}

		now := time.Now().UTC()
		outcome.UserBalances = map[int64]int64{}
		for _, c := range contributions {
			refundCents := c.RefundCents()
			if c.ContributorUserID != nil {
				user, err := lockUserBalance(tx, *c.ContributorUserID)
				if err != nil && !errors.Is(err, domain.ErrNotFound) {
					return err
				}
				if user != nil {
					err = tx.Model(&schema.User{}).
						Where("id = ?", user.ID).
						Updates(map[string]interface{}{
							"balance_cents": gorm.Expr("balance_cents + ?", refundCents),
							"updated_at":    now,
						}).Error
					if err != nil {
						return fmt.Errorf("failed to credit user balance: %w", err)
					}
					outcome.UserBalances[user.ID] = user.BalanceCents + refundCents
				}
			} else {
				account, err := lockViewerAccount(tx, c.ViewerTokenHash)
				if err != nil {
					return err
				}
				err = tx.Model(&schema.ViewerAccount{}).
					Where("id = ?", account.ID).
					Updates(map[string]interface{}{
						"balance_cents": gorm.Expr("balance_cents + ?", refundCents),
						"updated_at":    now,
					}).Error
				if err != nil {
					return fmt.Errorf("failed to credit viewer balance: %w", err)
				}
			}

			err = tx.Model(&schema.Contribution{}).
				Where("id = ?", c.ID).
				Update("refunded_at", now).Error
			if err != nil {
				return fmt.Errorf("failed to mark contribution refunded: %w", err)
			}
			outcome.RefundedCents += c.AmountCents
		}

		err = tx.Model(&schema.WishlistItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"is_archived": true,
				"updated_at":  now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to archive item: %w", err)
		}
		outcome.Archived = true
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, wrapStoreErr("failed to archive item", err)
	}
	return &outcome, nil
}

// CollectedCents sums the item's unrefunded contribution amounts
func (s *pgStore) CollectedCents(ctx context.Context, itemID int64) (int64, error) {
	return retryRead(ctx, func() (int64, error) {
		var total int64
		err := s.db.WithContext(ctx).Model(&schema.Contribution{}).
			Select("COALESCE(SUM(amount_cents), 0)").
			Where("item_id = ? AND refunded_at IS NULL", itemID).
			Scan(&total).Error
		if err != nil {
			return 0, wrapStoreErr("failed to sum contributions", err)
		}
		return total, nil
	})
}

// GetViewerAccount retrieves an anonymous spending account
func (s *pgStore) GetViewerAccount(ctx context.Context, viewerHash string) (*schema.ViewerAccount, error) {
	var account schema.ViewerAccount
	err := s.db.WithContext(ctx).Where("viewer_token_hash = ?", viewerHash).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreErr("failed to get viewer account", err)
	}
	return &account, nil
}

// ListNotifications lists a user's notifications, newest first
func (s *pgStore) ListNotifications(ctx context.Context, userID int64, limit int) ([]schema.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []schema.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, wrapStoreErr("failed to list notifications", err)
	}
	return notifications, nil
}

// UnreadNotificationCount counts a user's unread notifications
func (s *pgStore) UnreadNotificationCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, wrapStoreErr("failed to count notifications", err)
	}
	return count, nil
}

// MarkNotificationsRead marks all of a user's notifications read
func (s *pgStore) MarkNotificationsRead(ctx context.Context, userID int64) error {
	err := s.db.WithContext(ctx).Model(&schema.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now().UTC()).Error
	if err != nil {
		return wrapStoreErr("failed to mark notifications read", err)
	}
	return nil
}
