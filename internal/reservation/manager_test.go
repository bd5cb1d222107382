package reservation_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
	mockspkg "github.com/wishbox/wishbox/internal/mocks"
	"github.com/wishbox/wishbox/internal/reservation"
	"github.com/wishbox/wishbox/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testReservationMocks contains all the mocks needed for testing the manager
type testReservationMocks struct {
	ctrl      *gomock.Controller
	store     *mockspkg.MockStore
	publisher *mockspkg.MockPublisher
	clock     *mockspkg.MockClock
	manager   reservation.Manager
}

// setupTestReservation creates all the mocks and the manager for testing
func setupTestReservation(t *testing.T) *testReservationMocks {
	ctrl := gomock.NewController(t)

	tm := &testReservationMocks{
		ctrl:      ctrl,
		store:     mockspkg.NewMockStore(ctrl),
		publisher: mockspkg.NewMockPublisher(ctrl),
		clock:     mockspkg.NewMockClock(ctrl),
	}
	tm.manager = reservation.NewManager(tm.store, tm.publisher, tm.clock)

	return tm
}

// tearDownTestReservation cleans up the test mocks
func tearDownTestReservation(mocks *testReservationMocks) {
	mocks.ctrl.Finish()
}

func testWishlist() *schema.Wishlist {
	return &schema.Wishlist{
		ID:       1,
		OwnerID:  10,
		PublicID: "pub-abc",
		Title:    "Birthday",
		Currency: domain.CurrencyUSD,
		IsPublic: true,
	}
}

func testItem() *schema.WishlistItem {
	return &schema.WishlistItem{
		ID:                 5,
		WishlistID:         1,
		Name:               "Headphones",
		PriceCents:         10000,
		AllowContributions: true,
	}
}

func TestManager_Reserve_Success(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()
	wishlist := testWishlist()
	item := testItem()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(wishlist, nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(item, nil)
	mocks.store.EXPECT().
		GetActiveReservation(ctx, int64(5)).
		Return(nil, nil)
	mocks.store.EXPECT().
		CreateReservation(ctx, int64(5), "hash-a").
		Return(&schema.Reservation{ID: 1, ItemID: 5, ViewerTokenHash: "hash-a", CreatedAt: now}, nil)

	mocks.clock.EXPECT().Now().Return(now)
	mocks.publisher.EXPECT().
		PublishEvent(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.Event) error {
			assert.Equal(t, domain.EventReservationChanged, event.Type)
			assert.Equal(t, "pub-abc", event.WishlistPublicID)
			assert.Equal(t, int64(5), event.Data["item_id"])
			assert.Equal(t, true, event.Data["reserved"])
			return nil
		})

	result, err := mocks.manager.Reserve(ctx, "pub-abc", 5, "hash-a")

	assert.NoError(t, err)
	assert.True(t, result.Reserved)
	assert.True(t, result.ReservedByMe)
	assert.Equal(t, int64(5), result.ItemID)
	assert.Equal(t, now, *result.ReservedAt)
}

func TestManager_Reserve_IdempotentForHolder(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(testItem(), nil)
	mocks.store.EXPECT().
		GetActiveReservation(ctx, int64(5)).
		Return(&schema.Reservation{ID: 1, ItemID: 5, ViewerTokenHash: "hash-a", CreatedAt: now}, nil)

	// No create, no event
	result, err := mocks.manager.Reserve(ctx, "pub-abc", 5, "hash-a")

	assert.NoError(t, err)
	assert.True(t, result.Reserved)
	assert.True(t, result.ReservedByMe)
	assert.Equal(t, now, *result.ReservedAt)
}

func TestManager_Reserve_ConflictWithOtherViewer(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(testItem(), nil)
	mocks.store.EXPECT().
		GetActiveReservation(ctx, int64(5)).
		Return(&schema.Reservation{ID: 1, ItemID: 5, ViewerTokenHash: "hash-other"}, nil)

	result, err := mocks.manager.Reserve(ctx, "pub-abc", 5, "hash-a")

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, result)
}

func TestManager_Reserve_RaceLostMapsToConflict(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(testItem(), nil)
	mocks.store.EXPECT().
		GetActiveReservation(ctx, int64(5)).
		Return(nil, nil)

	// A concurrent reserve won the partial unique index race
	mocks.store.EXPECT().
		CreateReservation(ctx, int64(5), "hash-a").
		Return(nil, domain.ErrConflict)

	result, err := mocks.manager.Reserve(ctx, "pub-abc", 5, "hash-a")

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, result)
}

func TestManager_Reserve_UnknownWishlist(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "missing").
		Return(nil, nil)

	result, err := mocks.manager.Reserve(ctx, "missing", 5, "hash-a")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, result)
}

func TestManager_Reserve_PrivateWishlistReadsAsAbsent(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()
	wishlist := testWishlist()
	wishlist.IsPublic = false

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(wishlist, nil)

	result, err := mocks.manager.Reserve(ctx, "pub-abc", 5, "hash-a")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, result)
}

func TestManager_Reserve_ArchivedItemReadsAsAbsent(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()
	item := testItem()
	item.IsArchived = true

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(item, nil)

	result, err := mocks.manager.Reserve(ctx, "pub-abc", 5, "hash-a")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, result)
}

func TestManager_Reserve_ItemOfForeignWishlist(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()
	item := testItem()
	item.WishlistID = 99

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(item, nil)

	result, err := mocks.manager.Reserve(ctx, "pub-abc", 5, "hash-a")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, result)
}

func TestManager_Reserve_PublishFailureDoesNotFailCall(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(testItem(), nil)
	mocks.store.EXPECT().
		GetActiveReservation(ctx, int64(5)).
		Return(nil, nil)
	mocks.store.EXPECT().
		CreateReservation(ctx, int64(5), "hash-a").
		Return(&schema.Reservation{ID: 1, ItemID: 5, ViewerTokenHash: "hash-a", CreatedAt: now}, nil)

	mocks.clock.EXPECT().Now().Return(now)
	mocks.publisher.EXPECT().
		PublishEvent(ctx, gomock.Any()).
		Return(assert.AnError)

	// The reservation committed; the fan-out failure is logged and swallowed
	result, err := mocks.manager.Reserve(ctx, "pub-abc", 5, "hash-a")

	assert.NoError(t, err)
	assert.True(t, result.Reserved)
}

func TestManager_Unreserve_Success(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(testItem(), nil)
	mocks.store.EXPECT().
		ReleaseReservation(ctx, int64(5), "hash-a").
		Return(nil)

	mocks.clock.EXPECT().Now().Return(now)
	mocks.publisher.EXPECT().
		PublishEvent(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.Event) error {
			assert.Equal(t, domain.EventReservationChanged, event.Type)
			assert.Equal(t, false, event.Data["reserved"])
			return nil
		})

	result, err := mocks.manager.Unreserve(ctx, "pub-abc", 5, "hash-a")

	assert.NoError(t, err)
	assert.False(t, result.Reserved)
	assert.Equal(t, int64(5), result.ItemID)
}

func TestManager_Unreserve_NotReserved(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(testItem(), nil)
	mocks.store.EXPECT().
		ReleaseReservation(ctx, int64(5), "hash-a").
		Return(domain.ErrNotFound)

	result, err := mocks.manager.Unreserve(ctx, "pub-abc", 5, "hash-a")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, result)
}

func TestManager_Unreserve_HeldByAnotherViewer(t *testing.T) {
	mocks := setupTestReservation(t)
	defer tearDownTestReservation(mocks)

	ctx := context.Background()

	mocks.store.EXPECT().
		GetWishlistByPublicID(ctx, "pub-abc").
		Return(testWishlist(), nil)
	mocks.store.EXPECT().
		GetItemByID(ctx, int64(5)).
		Return(testItem(), nil)
	mocks.store.EXPECT().
		ReleaseReservation(ctx, int64(5), "hash-a").
		Return(domain.ErrForbidden)

	result, err := mocks.manager.Unreserve(ctx, "pub-abc", 5, "hash-a")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, result)
}
