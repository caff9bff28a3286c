package api

import (
	"net/http"      // HTTP status codes
	"path/filepath" // SPA shell path
	"strings"       // Path prefix check

	"storefront/internal/config"     // Application configuration
	"storefront/internal/middleware" // Auth, CSRF, and rate limit middleware
	"storefront/internal/session"    // Session store

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter builds the full route table with its middleware chain:
// rate limit -> session auth -> CSRF guard -> role gate -> handler
func NewRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client, store *session.Store) *gin.Engine {
	r := gin.New()           // Engine without default middleware
	r.Use(gin.Recovery())    // Panics become 500s, never stack traces to the client
	if !cfg.IsProd {
		r.Use(gin.Logger()) // Request log in development
	}

	// CORS for the SPA client during development
	if len(cfg.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSOrigins                              // Configured origins only
		corsCfg.AllowCredentials = true                                     // Session cookie crosses origins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, middleware.CSRFHeader) // Token header
		r.Use(cors.New(corsCfg))
	}

	// Login and register carry their own tighter budget, outside the
	// general API limiter
	r.POST("/api/auth/register", middleware.AuthRateLimit(rdb), RegisterHandler(db, store, cfg.IsProd))
	r.POST("/api/auth/login", middleware.AuthRateLimit(rdb), LoginHandler(db, store, cfg.IsProd))

	// Everything else under /api shares the per-address budget
	apiGroup := r.Group("/api", middleware.APIRateLimit(rdb))
	apiGroup.GET("/products", ListProductsHandler(db)) // Public catalog

	// Authenticated routes: session required, mutating verbs need a CSRF token
	authed := apiGroup.Group("", middleware.SessionAuthMiddleware(store, db, cfg.IsProd), middleware.CSRFMiddleware(store))
	authed.GET("/csrf-token", CSRFTokenHandler(store))         // Anti-forgery token endpoint
	authed.GET("/auth/verify", VerifyHandler())                // Current user
	authed.POST("/auth/logout", LogoutHandler(store, cfg.IsProd)) // Session teardown

	authed.GET("/users/favorites", ListFavoritesHandler(db))                 // Favorites listing
	authed.POST("/users/favorites/:productName", ToggleFavoriteHandler(db)) // Favorite toggle

	authed.GET("/users/cart", GetCartHandler(db))                        // Cart listing
	authed.POST("/users/cart/:productName", AddToCartHandler(db))        // Cart add/increment
	authed.DELETE("/users/cart/:productName", RemoveFromCartHandler(db)) // Cart line removal

	// Admin routes: session + administrator role
	admin := authed.Group("/admin", middleware.AdminOnlyMiddleware())
	admin.GET("/users", ListUsersHandler(db))           // User listing
	admin.PUT("/users/:userId", UpdateUserHandler(db))  // Role/active update
	admin.DELETE("/users/:userId", DeleteUserHandler(db)) // Account deletion
	admin.GET("/stats", StatsHandler(db))               // Dashboard counters
	admin.GET("/products", ListProductsHandler(db))     // Catalog listing
	admin.POST("/products", AddProductHandler(db))      // Catalog insert

	// Unmatched API paths get a JSON 404; everything else serves the SPA shell
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
			return
		}
		if cfg.StaticDir != "" {
			c.File(filepath.Join(cfg.StaticDir, "index.html"))
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
	})

	return r
}
