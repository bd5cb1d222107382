package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func seedUser(t *testing.T, s Store, email string) *schema.User {
	user, err := s.CreateUser(context.Background(), CreateUserInput{
		Email:        email,
		PasswordHash: "argon2id$test",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func seedWishlist(t *testing.T, s Store, ownerID int64, currency domain.Currency) *schema.Wishlist {
	wishlist, err := s.CreateWishlist(context.Background(), CreateWishlistInput{
		OwnerID:  ownerID,
		PublicID: fmt.Sprintf("pub-%d-%s", ownerID, currency),
		Title:    "Birthday",
		Currency: currency,
		IsPublic: true,
	})
	require.NoError(t, err)
	require.NotNil(t, wishlist)
	return wishlist
}

func seedItem(t *testing.T, s Store, wishlistID int64, priceCents int64, allowContributions bool) *schema.WishlistItem {
	item, err := s.CreateItem(context.Background(), CreateItemInput{
		WishlistID:         wishlistID,
		Name:               "Headphones",
		PriceCents:         priceCents,
		AllowContributions: allowContributions,
	})
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

// contributeInput builds an anonymous contribution already converted 1:1,
// which is what the funding layer produces for USD wishlists
func contributeInput(itemID int64, viewerHash string, amountCents int64) ContributeInput {
	return ContributeInput{
		ItemID:          itemID,
		ViewerTokenHash: viewerHash,
		AmountCents:     amountCents,
		ChargedUSDCents: amountCents,
	}
}

// =============================================================================
// Users
// =============================================================================

func testCreateUserAndLookup(t *testing.T, s Store) {
	ctx := context.Background()

	user := seedUser(t, s, "alice@example.com")
	assert.Equal(t, schema.StartingBalanceCents, user.BalanceCents)

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := s.GetUserByID(ctx, user.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = s.CreateUser(ctx, CreateUserInput{
		Email:        "alice@example.com",
		PasswordHash: "argon2id$other",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// =============================================================================
// Wishlists and items
// =============================================================================

func testWishlistLookupAndOwnerListing(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	other := seedUser(t, s, "other@example.com")

	first := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	second := seedWishlist(t, s, owner.ID, domain.CurrencyEUR)
	seedWishlist(t, s, other.ID, domain.CurrencyUSD)

	byPublic, err := s.GetWishlistByPublicID(ctx, first.PublicID)
	require.NoError(t, err)
	require.NotNil(t, byPublic)
	assert.Equal(t, first.ID, byPublic.ID)

	missing, err := s.GetWishlistByPublicID(ctx, "no-such-list")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Archived items are not counted
	seedItem(t, s, second.ID, 10_000, false)
	archived := seedItem(t, s, second.ID, 5_000, false)
	_, err = s.ArchiveItemWithRefund(ctx, archived.ID)
	require.NoError(t, err)

	summaries, err := s.ListWishlistsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	counts := map[int64]int64{}
	for _, summary := range summaries {
		counts[summary.Wishlist.ID] = summary.ItemCount
	}
	assert.Equal(t, int64(0), counts[first.ID])
	assert.Equal(t, int64(1), counts[second.ID])
}

func testGetOwnedItem(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	stranger := seedUser(t, s, "stranger@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, true)

	gotItem, gotWishlist, err := s.GetOwnedItem(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, gotItem.ID)
	assert.Equal(t, wishlist.ID, gotWishlist.ID)

	// Ownership failures are indistinguishable from absence
	_, _, err = s.GetOwnedItem(ctx, item.ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = s.GetOwnedItem(ctx, item.ID+1000, owner.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testUpdateItemPartial(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, false)

	newName := "Noise-cancelling headphones"
	newPrice := int64(15_000)
	allow := true
	updated, err := s.UpdateItem(ctx, item.ID, ItemUpdate{
		Name:               &newName,
		PriceCents:         &newPrice,
		AllowContributions: &allow,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newPrice, updated.PriceCents)
	assert.True(t, updated.AllowContributions)
	// Untouched fields survive
	assert.Equal(t, item.Position, updated.Position)

	// Empty update is a no-op read
	same, err := s.UpdateItem(ctx, item.ID, ItemUpdate{})
	require.NoError(t, err)
	assert.Equal(t, newName, same.Name)

	_, err = s.UpdateItem(ctx, item.ID+1000, ItemUpdate{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testReorderItems(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	a := seedItem(t, s, wishlist.ID, 1_000, false)
	b := seedItem(t, s, wishlist.ID, 2_000, false)
	c := seedItem(t, s, wishlist.ID, 3_000, false)

	err := s.ReorderItems(ctx, wishlist.ID, []int64{c.ID, a.ID, b.ID})
	require.NoError(t, err)

	aggregates, err := s.ListItemsWithAggregates(ctx, wishlist.ID, "")
	require.NoError(t, err)
	require.Len(t, aggregates, 3)
	assert.Equal(t, c.ID, aggregates[0].Item.ID)
	assert.Equal(t, a.ID, aggregates[1].Item.ID)
	assert.Equal(t, b.ID, aggregates[2].Item.ID)

	// An id outside the wishlist rolls the whole reorder back
	foreign := seedWishlist(t, s, owner.ID, domain.CurrencyEUR)
	foreignItem := seedItem(t, s, foreign.ID, 1_000, false)
	err = s.ReorderItems(ctx, wishlist.ID, []int64{foreignItem.ID, a.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	aggregates, err = s.ListItemsWithAggregates(ctx, wishlist.ID, "")
	require.NoError(t, err)
	assert.Equal(t, c.ID, aggregates[0].Item.ID)
}

func testListItemsWithAggregates(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	funded := seedItem(t, s, wishlist.ID, 10_000, true)
	reserved := seedItem(t, s, wishlist.ID, 5_000, false)

	_, err := s.Contribute(ctx, contributeInput(funded.ID, "viewer-a", 3_000))
	require.NoError(t, err)
	_, err = s.Contribute(ctx, contributeInput(funded.ID, "viewer-b", 2_000))
	require.NoError(t, err)

	_, err = s.CreateReservation(ctx, reserved.ID, "viewer-b")
	require.NoError(t, err)

	aggregates, err := s.ListItemsWithAggregates(ctx, wishlist.ID, "viewer-a")
	require.NoError(t, err)
	require.Len(t, aggregates, 2)

	byID := map[int64]ItemAggregate{}
	for _, agg := range aggregates {
		byID[agg.Item.ID] = agg
	}

	assert.Equal(t, int64(5_000), byID[funded.ID].CollectedCents)
	assert.Equal(t, int64(3_000), byID[funded.ID].MineCents)
	assert.False(t, byID[funded.ID].Reserved)

	assert.True(t, byID[reserved.ID].Reserved)
	assert.False(t, byID[reserved.ID].ReservedByMe)
	assert.Equal(t, "viewer-b", byID[reserved.ID].ReservedByHash)
	assert.NotNil(t, byID[reserved.ID].ReservedAt)

	// The holder sees the reservation as their own
	aggregates, err = s.ListItemsWithAggregates(ctx, wishlist.ID, "viewer-b")
	require.NoError(t, err)
	for _, agg := range aggregates {
		if agg.Item.ID == reserved.ID {
			assert.True(t, agg.ReservedByMe)
		}
	}

	// Anonymous view carries no per-viewer aggregates
	aggregates, err = s.ListItemsWithAggregates(ctx, wishlist.ID, "")
	require.NoError(t, err)
	for _, agg := range aggregates {
		assert.Equal(t, int64(0), agg.MineCents)
		assert.False(t, agg.ReservedByMe)
	}
}

// =============================================================================
// Reservations
// =============================================================================

func testReservationLifecycle(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, false)

	none, err := s.GetActiveReservation(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	reservation, err := s.CreateReservation(ctx, item.ID, "viewer-a")
	require.NoError(t, err)
	require.NotNil(t, reservation)
	assert.True(t, reservation.Active())

	active, err := s.GetActiveReservation(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "viewer-a", active.ViewerTokenHash)

	// The partial unique index arbitrates the second insert
	_, err = s.CreateReservation(ctx, item.ID, "viewer-b")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Only the holder may release
	err = s.ReleaseReservation(ctx, item.ID, "viewer-b")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = s.ReleaseReservation(ctx, item.ID, "viewer-a")
	require.NoError(t, err)

	released, err := s.GetActiveReservation(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, released)

	// Releasing again finds nothing
	err = s.ReleaseReservation(ctx, item.ID, "viewer-a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A released item is free for the next viewer
	_, err = s.CreateReservation(ctx, item.ID, "viewer-b")
	require.NoError(t, err)
}

// =============================================================================
// Contributions
// =============================================================================

func testContributeDebitsViewerBalance(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, true)

	// The spending account is created lazily on first debit
	outcome, err := s.Contribute(ctx, contributeInput(item.ID, "viewer-a", 5_000))
	require.NoError(t, err)
	require.NotNil(t, outcome.Contribution)
	assert.Equal(t, int64(5_000), outcome.Contribution.AmountCents)
	assert.Equal(t, int64(5_000), outcome.Contribution.ChargedUSDCents)
	assert.Nil(t, outcome.Contribution.ContributorUserID)
	assert.Equal(t, int64(5_000), outcome.CollectedCents)
	assert.Equal(t, int64(5_000), outcome.MineCents)
	assert.Equal(t, schema.StartingBalanceCents-5_000, outcome.NewBalanceCents)

	account, err := s.GetViewerAccount(ctx, "viewer-a")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, schema.StartingBalanceCents-5_000, account.BalanceCents)

	collected, err := s.CollectedCents(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5_000), collected)
}

func testContributeDebitsUserBalance(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	contributor := seedUser(t, s, "friend@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, true)

	input := contributeInput(item.ID, "viewer-a", 4_000)
	input.ContributorUserID = &contributor.ID
	outcome, err := s.Contribute(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, schema.StartingBalanceCents-4_000, outcome.NewBalanceCents)

	refreshed, err := s.GetUserByID(ctx, contributor.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.StartingBalanceCents-4_000, refreshed.BalanceCents)

	// Their anonymous account was never touched
	account, err := s.GetViewerAccount(ctx, "viewer-a")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func testContributeCapEnforcement(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, true)

	_, err := s.Contribute(ctx, contributeInput(item.ID, "viewer-a", 6_000))
	require.NoError(t, err)

	// Two 6000s do not fit a 10000 goal
	_, err = s.Contribute(ctx, contributeInput(item.ID, "viewer-b", 6_000))
	var exceedsErr *domain.ExceedsRemainingError
	require.ErrorAs(t, err, &exceedsErr)
	assert.Equal(t, int64(4_000), exceedsErr.RemainingCents)

	// The rejected attempt left no trace
	collected, err := s.CollectedCents(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6_000), collected)

	account, err := s.GetViewerAccount(ctx, "viewer-b")
	require.NoError(t, err)
	if account != nil {
		assert.Equal(t, schema.StartingBalanceCents, account.BalanceCents)
	}

	// Filling the remainder exactly is allowed
	_, err = s.Contribute(ctx, contributeInput(item.ID, "viewer-b", 4_000))
	require.NoError(t, err)

	_, err = s.Contribute(ctx, contributeInput(item.ID, "viewer-c", 100))
	var goalErr *domain.GoalReachedError
	require.ErrorAs(t, err, &goalErr)
	assert.Equal(t, int64(10_000), goalErr.PriceCents)
	assert.Equal(t, int64(10_000), goalErr.CollectedCents)
}

func testContributeInsufficientBalance(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 500_000, true)

	_, err := s.Contribute(ctx, contributeInput(item.ID, "viewer-a", 200_000))
	var balanceErr *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &balanceErr)
	assert.Equal(t, schema.StartingBalanceCents, balanceErr.BalanceCents)
	assert.Equal(t, int64(200_000), balanceErr.ChargedCents)

	// Nothing was written
	collected, err := s.CollectedCents(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), collected)
}

func testContributePreconditions(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)

	closed := seedItem(t, s, wishlist.ID, 10_000, false)
	_, err := s.Contribute(ctx, contributeInput(closed.ID, "viewer-a", 1_000))
	assert.ErrorIs(t, err, domain.ErrNotAllowed)

	// A contribution row forces archive instead of delete
	archived := seedItem(t, s, wishlist.ID, 10_000, true)
	_, err = s.Contribute(ctx, contributeInput(archived.ID, "viewer-a", 1_000))
	require.NoError(t, err)
	_, err = s.ArchiveItemWithRefund(ctx, archived.ID)
	require.NoError(t, err)
	_, err = s.Contribute(ctx, contributeInput(archived.ID, "viewer-a", 1_000))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Contribute(ctx, contributeInput(closed.ID+1000, "viewer-a", 1_000))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A zero charged amount means conversion never happened
	input := contributeInput(closed.ID, "viewer-a", 1_000)
	input.ChargedUSDCents = 0
	_, err = s.Contribute(ctx, input)
	assert.ErrorIs(t, err, domain.ErrConversionFailed)
}

func testContributeOwnerNotification(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, true)

	meta, err := json.Marshal(map[string]interface{}{"amount_cents": 2_500})
	require.NoError(t, err)

	input := contributeInput(item.ID, "viewer-a", 2_500)
	input.OwnerNotification = &NotificationInput{
		UserID:     owner.ID,
		WishlistID: &wishlist.ID,
		ItemID:     &item.ID,
		Type:       schema.NotificationContributionReceived,
		Title:      "Someone chipped in",
		Meta:       meta,
	}
	_, err = s.Contribute(ctx, input)
	require.NoError(t, err)

	notifications, err := s.ListNotifications(ctx, owner.ID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, schema.NotificationContributionReceived, notifications[0].Type)
	assert.Equal(t, "Someone chipped in", notifications[0].Title)
	require.NotNil(t, notifications[0].ItemID)
	assert.Equal(t, item.ID, *notifications[0].ItemID)

	unread, err := s.UnreadNotificationCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	err = s.MarkNotificationsRead(ctx, owner.ID)
	require.NoError(t, err)

	unread, err = s.UnreadNotificationCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

// =============================================================================
// Archiving and refunds
// =============================================================================

func testArchiveRefundsContributors(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	contributor := seedUser(t, s, "friend@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, true)

	_, err := s.Contribute(ctx, contributeInput(item.ID, "viewer-a", 3_000))
	require.NoError(t, err)

	registered := contributeInput(item.ID, "viewer-b", 2_000)
	registered.ContributorUserID = &contributor.ID
	_, err = s.Contribute(ctx, registered)
	require.NoError(t, err)

	outcome, err := s.ArchiveItemWithRefund(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Archived)
	assert.Equal(t, int64(5_000), outcome.RefundedCents)
	assert.Equal(t, map[int64]int64{contributor.ID: schema.StartingBalanceCents}, outcome.UserBalances)

	// Both sides of the ledger are whole again
	account, err := s.GetViewerAccount(ctx, "viewer-a")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, schema.StartingBalanceCents, account.BalanceCents)

	refreshed, err := s.GetUserByID(ctx, contributor.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.StartingBalanceCents, refreshed.BalanceCents)

	collected, err := s.CollectedCents(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), collected)

	archivedItem, err := s.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, archivedItem)
	assert.True(t, archivedItem.IsArchived)

	// Refunds are idempotent: a second pass finds nothing open and keeps the row
	again, err := s.ArchiveItemWithRefund(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, again.Archived)
	assert.Equal(t, int64(0), again.RefundedCents)

	stillThere, err := s.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stillThere)
}

func testArchiveHardDeletesWithoutActivity(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, true)

	outcome, err := s.ArchiveItemWithRefund(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, outcome.Archived)
	assert.Equal(t, int64(0), outcome.RefundedCents)

	gone, err := s.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	_, err = s.ArchiveItemWithRefund(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testArchiveKeepsItemWithReservationHistory(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	wishlist := seedWishlist(t, s, owner.ID, domain.CurrencyUSD)
	item := seedItem(t, s, wishlist.ID, 10_000, false)

	_, err := s.CreateReservation(ctx, item.ID, "viewer-a")
	require.NoError(t, err)

	// A reservation is history worth keeping even with nothing to refund
	outcome, err := s.ArchiveItemWithRefund(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Archived)
	assert.Equal(t, int64(0), outcome.RefundedCents)

	kept, err := s.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.IsArchived)
}

// RunStoreTests runs the suite against a store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateUserAndLookup", testCreateUserAndLookup},
		{"WishlistLookupAndOwnerListing", testWishlistLookupAndOwnerListing},
		{"GetOwnedItem", testGetOwnedItem},
		{"UpdateItemPartial", testUpdateItemPartial},
		{"ReorderItems", testReorderItems},
		{"ListItemsWithAggregates", testListItemsWithAggregates},
		{"ReservationLifecycle", testReservationLifecycle},
		{"ContributeDebitsViewerBalance", testContributeDebitsViewerBalance},
		{"ContributeDebitsUserBalance", testContributeDebitsUserBalance},
		{"ContributeCapEnforcement", testContributeCapEnforcement},
		{"ContributeInsufficientBalance", testContributeInsufficientBalance},
		{"ContributePreconditions", testContributePreconditions},
		{"ContributeOwnerNotification", testContributeOwnerNotification},
		{"ArchiveRefundsContributors", testArchiveRefundsContributors},
		{"ArchiveHardDeletesWithoutActivity", testArchiveHardDeletesWithoutActivity},
		{"ArchiveKeepsItemWithReservationHistory", testArchiveKeepsItemWithReservationHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
