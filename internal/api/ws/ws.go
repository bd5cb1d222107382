package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wishbox/wishbox/internal/api/middleware"
	"github.com/wishbox/wishbox/internal/bridge"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
	"github.com/wishbox/wishbox/internal/store"
)

const writeTimeout = 5 * time.Second

// Handler upgrades HTTP requests into live event subscriptions
type Handler struct {
	store store.Store
	hub   *bridge.Hub
}

// NewHandler creates a new websocket handler
func NewHandler(st store.Store, hub *bridge.Hub) *Handler {
	return &Handler{store: st, hub: hub}
}

// socketSink adapts one websocket connection to the hub's Sink
type socketSink struct {
	conn *websocket.Conn
}

func (s *socketSink) Send(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return s.conn.Write(ctx, websocket.MessageText, data)
}

// WishlistRoom subscribes the connection to a wishlist's public room.
// Inbound frames are ignored; the socket is a one-way event feed.
func (h *Handler) WishlistRoom(c *gin.Context) {
	publicID := c.Param("public_id")

	wishlist, err := h.store.GetWishlistByPublicID(c.Request.Context(), publicID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if wishlist == nil || !wishlist.IsPublic {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	h.serve(c, wishlist.PublicID)
}

// UserRoom subscribes the connection to the authenticated user's private room.
// Auth runs before the upgrade via the standard middleware.
func (h *Handler) UserRoom(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == 0 {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	h.serve(c, domain.UserRoom(userID))
}

// serve upgrades the request and pins the connection to a room until the peer
// goes away. The read side is only used to observe disconnection.
func (h *Handler) serve(c *gin.Context, room string) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logger.Debug("websocket upgrade failed",
			zap.String("room", room),
			zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	sub := h.hub.Subscribe(room, &socketSink{conn: conn})
	defer h.hub.Unsubscribe(sub)

	logger.Debug("websocket connected", zap.String("room", room))

	// CloseRead discards inbound frames and cancels the context when the
	// connection dies.
	ctx := conn.CloseRead(c.Request.Context())
	<-ctx.Done()

	logger.Debug("websocket disconnected", zap.String("room", room))
}
