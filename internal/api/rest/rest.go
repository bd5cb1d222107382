package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/wishbox/wishbox/internal/api/middleware"
	"github.com/wishbox/wishbox/internal/ratelimit"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler *Handler, authCfg middleware.AuthConfig, limiter ratelimit.Limiter) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	reserveLimit := middleware.RateLimit(limiter, "reserve",
		ratelimit.Limit{PerMinute: 20},
		ratelimit.Limit{PerMinute: 30})
	contributeLimit := middleware.RateLimit(limiter, "contribute",
		ratelimit.Limit{PerMinute: 25},
		ratelimit.Limit{})

	v1 := router.Group("/api/v1")
	{
		// Public wishlist surface, keyed by opaque public id
		public := v1.Group("/wishlists/:public_id")
		public.Use(middleware.ViewerIdentity(false))
		{
			public.GET("", handler.GetWishlist)

			acting := public.Group("/items/:item_id")
			acting.Use(middleware.ViewerIdentity(true))
			{
				acting.POST("/reserve", reserveLimit, handler.Reserve)
				acting.POST("/unreserve", reserveLimit, handler.Unreserve)
				acting.POST("/contribute", contributeLimit, middleware.OptionalAuth(authCfg), handler.Contribute)
			}
		}

		// Anonymous viewer account
		v1.GET("/viewer/balance", middleware.ViewerIdentity(true), handler.GetViewerBalance)

		// Owner surface (requires authentication)
		me := v1.Group("/me")
		me.Use(middleware.Auth(authCfg))
		{
			me.GET("/wishlists", handler.ListMyWishlists)
			me.POST("/wishlists", handler.CreateWishlist)
			me.GET("/wishlists/:wishlist_id", handler.GetMyWishlist)
			me.POST("/wishlists/:wishlist_id/items", handler.CreateItem)
			me.POST("/wishlists/:wishlist_id/items/reorder", handler.ReorderItems)
			me.PATCH("/items/:item_id", handler.UpdateItem)
			me.DELETE("/items/:item_id", handler.DeleteItem)
			me.GET("/balance", handler.GetMyBalance)
			me.GET("/notifications", handler.ListNotifications)
			me.POST("/notifications/read", handler.MarkNotificationsRead)
		}
	}
}
