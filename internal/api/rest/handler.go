package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wishbox/wishbox/internal/api/middleware"
	"github.com/wishbox/wishbox/internal/api/rest/dto"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/funding"
	"github.com/wishbox/wishbox/internal/reservation"
	"github.com/wishbox/wishbox/internal/store"
	"github.com/wishbox/wishbox/internal/store/schema"
)

// Handler serves the REST API
type Handler struct {
	store        store.Store
	reservations reservation.Manager
	funding      funding.Manager
}

// NewHandler creates a new REST handler
func NewHandler(st store.Store, reservations reservation.Manager, fundingMgr funding.Manager) *Handler {
	return &Handler{
		store:        st,
		reservations: reservations,
		funding:      fundingMgr,
	}
}

// HealthCheck reports service liveness
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid item id")
		return 0, false
	}
	return id, true
}

func parseWishlistID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("wishlist_id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid wishlist id")
		return 0, false
	}
	return id, true
}

// GetWishlist returns a public wishlist with per-viewer item aggregates
func (h *Handler) GetWishlist(c *gin.Context) {
	publicID := c.Param("public_id")

	wishlist, err := h.store.GetWishlistByPublicID(c.Request.Context(), publicID)
	if err != nil {
		respondInternalError(c, err, "Failed to load wishlist")
		return
	}
	if wishlist == nil || !wishlist.IsPublic {
		respondNotFound(c, "Wishlist not found")
		return
	}

	aggregates, err := h.store.ListItemsWithAggregates(c.Request.Context(), wishlist.ID, middleware.ViewerHash(c))
	if err != nil {
		respondInternalError(c, err, "Failed to load wishlist items")
		return
	}

	c.JSON(http.StatusOK, dto.FromWishlist(wishlist, aggregates, false))
}

// Reserve marks an item reserved for the calling viewer
func (h *Handler) Reserve(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	result, err := h.reservations.Reserve(c.Request.Context(), c.Param("public_id"), itemID, middleware.ViewerHash(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReservationResponse{
		ItemID:       result.ItemID,
		Reserved:     result.Reserved,
		ReservedByMe: result.ReservedByMe,
		ReservedAt:   result.ReservedAt,
	})
}

// Unreserve releases the calling viewer's reservation
func (h *Handler) Unreserve(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	result, err := h.reservations.Unreserve(c.Request.Context(), c.Param("public_id"), itemID, middleware.ViewerHash(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReservationResponse{
		ItemID:   result.ItemID,
		Reserved: result.Reserved,
	})
}

// Contribute debits the caller and records a contribution toward an item
func (h *Handler) Contribute(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var req dto.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	params := funding.ContributeParams{
		PublicID:    c.Param("public_id"),
		ItemID:      itemID,
		ViewerHash:  middleware.ViewerHash(c),
		AmountCents: req.AmountCents,
		Message:     req.Message,
	}
	if userID := middleware.UserID(c); userID != 0 {
		params.ContributorUserID = &userID
	}

	result, err := h.funding.Contribute(c.Request.Context(), params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ContributionResponse{
		ContributionID:  result.Contribution.ID,
		ItemID:          result.Contribution.ItemID,
		AmountCents:     result.Contribution.AmountCents,
		ChargedUSDCents: result.ChargedUSDCents,
		CollectedCents:  result.CollectedCents,
		RemainingCents:  result.RemainingCents,
		MineCents:       result.MineCents,
		BalanceCents:    result.NewBalanceCents,
		CreatedAt:       result.Contribution.CreatedAt,
	})
}

// GetViewerBalance returns the anonymous caller's spending balance. Accounts
// are created lazily on first debit, so an absent row reads as the starting
// balance.
func (h *Handler) GetViewerBalance(c *gin.Context) {
	account, err := h.store.GetViewerAccount(c.Request.Context(), middleware.ViewerHash(c))
	if err != nil {
		respondInternalError(c, err, "Failed to load balance")
		return
	}

	balance := schema.StartingBalanceCents
	if account != nil {
		balance = account.BalanceCents
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		BalanceCents: balance,
		Currency:     string(domain.ReferenceCurrency),
	})
}

// ListMyWishlists lists the authenticated owner's wishlists
func (h *Handler) ListMyWishlists(c *gin.Context) {
	summaries, err := h.store.ListWishlistsByOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondInternalError(c, err, "Failed to list wishlists")
		return
	}

	out := make([]dto.WishlistSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.WishlistSummaryResponse{
			ID:        s.Wishlist.ID,
			PublicID:  s.Wishlist.PublicID,
			Title:     s.Wishlist.Title,
			Currency:  s.Wishlist.Currency,
			IsPublic:  s.Wishlist.IsPublic,
			ItemCount: s.ItemCount,
			CreatedAt: s.Wishlist.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"wishlists": out})
}

// CreateWishlist creates a wishlist for the authenticated owner
func (h *Handler) CreateWishlist(c *gin.Context) {
	var req dto.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	currency := domain.ReferenceCurrency
	if req.Currency != "" {
		currency = domain.Currency(req.Currency)
		if !currency.Valid() {
			respondValidationError(c, "unsupported currency")
			return
		}
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	wishlist, err := h.store.CreateWishlist(c.Request.Context(), store.CreateWishlistInput{
		OwnerID:     middleware.UserID(c),
		PublicID:    uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Currency:    currency,
		IsPublic:    isPublic,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to create wishlist")
		return
	}

	c.JSON(http.StatusCreated, dto.FromWishlist(wishlist, nil, true))
}

// getOwnedWishlist loads a wishlist and verifies the caller owns it
func (h *Handler) getOwnedWishlist(c *gin.Context, wishlistID int64) (*schema.Wishlist, bool) {
	wishlist, err := h.store.GetWishlistByID(c.Request.Context(), wishlistID)
	if err != nil {
		respondInternalError(c, err, "Failed to load wishlist")
		return nil, false
	}
	if wishlist == nil || wishlist.OwnerID != middleware.UserID(c) {
		respondNotFound(c, "Wishlist not found")
		return nil, false
	}
	return wishlist, true
}

// GetMyWishlist returns one of the owner's wishlists with item aggregates
func (h *Handler) GetMyWishlist(c *gin.Context) {
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	wishlist, ok := h.getOwnedWishlist(c, wishlistID)
	if !ok {
		return
	}

	aggregates, err := h.store.ListItemsWithAggregates(c.Request.Context(), wishlist.ID, "")
	if err != nil {
		respondInternalError(c, err, "Failed to load wishlist items")
		return
	}

	c.JSON(http.StatusOK, dto.FromWishlist(wishlist, aggregates, true))
}

// CreateItem adds an item to one of the owner's wishlists
func (h *Handler) CreateItem(c *gin.Context) {
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	wishlist, ok := h.getOwnedWishlist(c, wishlistID)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	existing, err := h.store.ListItemsWithAggregates(c.Request.Context(), wishlist.ID, "")
	if err != nil {
		respondInternalError(c, err, "Failed to load wishlist items")
		return
	}

	item, err := h.store.CreateItem(c.Request.Context(), store.CreateItemInput{
		WishlistID:         wishlist.ID,
		Name:               req.Name,
		URL:                req.URL,
		ImageURL:           req.ImageURL,
		PriceCents:         req.PriceCents,
		AllowContributions: req.AllowContributions,
		Position:           int32(len(existing)), //nolint:gosec
		Notes:              req.Notes,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to create item")
		return
	}

	c.JSON(http.StatusCreated, dto.FromItemAggregate(store.ItemAggregate{Item: *item}))
}

// UpdateItem applies a partial update to one of the owner's items
func (h *Handler) UpdateItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.PriceCents != nil && *req.PriceCents <= 0 {
		respondValidationError(c, "price_cents must be positive")
		return
	}

	item, _, err := h.store.GetOwnedItem(c.Request.Context(), itemID, middleware.UserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	updated, err := h.store.UpdateItem(c.Request.Context(), item.ID, store.ItemUpdate{
		Name:               req.Name,
		URL:                req.URL,
		ImageURL:           req.ImageURL,
		PriceCents:         req.PriceCents,
		AllowContributions: req.AllowContributions,
		Notes:              req.Notes,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromItemAggregate(store.ItemAggregate{Item: *updated}))
}

// ReorderItems rewrites the item ordering of one of the owner's wishlists
func (h *Handler) ReorderItems(c *gin.Context) {
	wishlistID, ok := parseWishlistID(c)
	if !ok {
		return
	}
	wishlist, ok := h.getOwnedWishlist(c, wishlistID)
	if !ok {
		return
	}

	var req dto.ReorderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.store.ReorderItems(c.Request.Context(), wishlist.ID, req.ItemIDs); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteItem archives one of the owner's items after refunding open
// contributions, or hard-deletes it when it never saw activity
func (h *Handler) DeleteItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	result, err := h.funding.ArchiveOrDelete(c.Request.Context(), middleware.UserID(c), itemID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ArchiveResponse{
		ItemID:        itemID,
		Archived:      result.Archived,
		Deleted:       !result.Archived,
		RefundedCents: result.RefundedCents,
	})
}

// GetMyBalance returns the authenticated user's spending balance
func (h *Handler) GetMyBalance(c *gin.Context) {
	user, err := h.store.GetUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondInternalError(c, err, "Failed to load balance")
		return
	}
	if user == nil {
		respondNotFound(c, "User not found")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		BalanceCents: user.BalanceCents,
		Currency:     string(domain.ReferenceCurrency),
	})
}

// ListNotifications lists the authenticated user's notifications
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := middleware.UserID(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 200 {
			respondValidationError(c, "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	notifications, err := h.store.ListNotifications(c.Request.Context(), userID, limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list notifications")
		return
	}
	unread, err := h.store.UnreadNotificationCount(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "Failed to count notifications")
		return
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.FromNotification(n))
	}
	c.JSON(http.StatusOK, dto.NotificationListResponse{
		Notifications: out,
		UnreadCount:   unread,
	})
}

// MarkNotificationsRead marks all of the authenticated user's notifications read
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	if err := h.store.MarkNotificationsRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondInternalError(c, err, "Failed to mark notifications read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
