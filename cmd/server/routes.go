package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bazaar.backend/internal/domain/entities"
	"bazaar.backend/internal/interfaces/http/handlers"
	"bazaar.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	itemHandler    *handlers.ItemHandler
	sellerHandler  *handlers.SellerHandler
	adminHandler   *handlers.AdminHandler
	searchHandler  *handlers.SearchHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	sellerRoles := middleware.RequireRole(entities.RoleSeller, entities.RoleAdmin, entities.RoleSuperAdmin)

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public except /me)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Listing routes. The catalog reads are public, everything that
		// touches a specific listing or creates one requires a token.
		item := v1.Group("/item")
		{
			item.GET("", d.itemHandler.Search)
			item.GET("/categories", d.itemHandler.Categories)
			item.GET("/category/:category", d.itemHandler.ByCategory)
			item.GET("/category/:category/:subCategory", d.itemHandler.ByCategory)

			item.GET("/all", d.authMiddleware, d.itemHandler.All)
			item.GET("/:id", d.authMiddleware, d.itemHandler.Get)

			item.POST("/add", d.authMiddleware, sellerRoles, middleware.IdempotencyMiddleware(), d.itemHandler.Create)
			item.PUT("/update/:id", d.authMiddleware, sellerRoles, d.itemHandler.Update)
			item.DELETE("/delete/:id", d.authMiddleware, sellerRoles, d.itemHandler.Delete)
			item.PUT("/sold/:id", d.authMiddleware, sellerRoles, d.itemHandler.Sold)

			item.PUT("/approve/:id", d.authMiddleware, middleware.RequireAdmin(), d.itemHandler.Approve)
			item.PUT("/reject/:id", d.authMiddleware, middleware.RequireAdmin(), d.itemHandler.Reject)
		}

		// Seller dashboard routes (protected)
		seller := v1.Group("/seller")
		seller.Use(d.authMiddleware, middleware.RequireRole(entities.RoleSeller))
		{
			seller.GET("/my-items", d.sellerHandler.MyItems)
			seller.GET("/favorite-items", d.sellerHandler.Favorites)
			seller.POST("/favorite-item/:itemId", d.sellerHandler.AddFavorite)
			seller.DELETE("/favorite-item/:itemId", d.sellerHandler.RemoveFavorite)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware)
		{
			admin.GET("/items", middleware.RequireAdmin(), d.adminHandler.ListItems)
			admin.GET("/users", middleware.RequireAdmin(), d.adminHandler.ListUsers)
			admin.PUT("/make-admin/:id", middleware.RequireSuperAdmin(), d.adminHandler.MakeAdmin)
			admin.PUT("/remove-admin/:id", middleware.RequireSuperAdmin(), d.adminHandler.RemoveAdmin)
		}

		// AI search routes
		ask := v1.Group("/ask")
		{
			ask.POST("/search", d.searchHandler.Search)
			ask.GET("/generate-item-embedding", d.authMiddleware, d.searchHandler.GenerateEmbeddings)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-Idempotency-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "bazaar-backend",
			"version": "0.1.0",
		})
	})
}
