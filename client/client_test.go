package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"storefront/internal/api"
	"storefront/internal/config"
	dbpkg "storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/session"
	"storefront/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// serverEnv is a real storefront server running in-process
type serverEnv struct {
	server   *httptest.Server
	db       *gorm.DB
	mr       *miniredis.Miniredis
	requests atomic.Int64 // Count of requests seen, for retry assertions
}

// newServerEnv builds the full router on in-memory stores and serves it
func newServerEnv(t *testing.T) *serverEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, dbpkg.AutoMigrate(gdb))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewStore(rdb)
	router := api.NewRouter(&config.Config{}, gdb, rdb, store)

	env := &serverEnv{db: gdb, mr: mr}
	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1) // Count every round trip the client makes
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(env.server.Close)
	return env
}

// seedUser inserts an account directly
func (e *serverEnv) seedUser(t *testing.T, email, password, role string) domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := domain.User{Email: email, Password: hash, FirstName: "Seed", LastName: "User", Role: role, Active: true}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

// seedProduct inserts a catalog entry directly
func (e *serverEnv) seedProduct(t *testing.T, name string, price float64) domain.Product {
	t.Helper()
	product := domain.Product{Name: name, Brand: "Seed", Price: price}
	require.NoError(t, e.db.Create(&product).Error)
	return product
}

// dropCSRFTokens deletes every issued token server-side, simulating
// token rotation under the client's feet
func (e *serverEnv) dropCSRFTokens() {
	for _, key := range e.mr.Keys() {
		if strings.HasPrefix(key, "csrf:") {
			e.mr.Del(key)
		}
	}
}

func TestClientRegisterAndBrowse(t *testing.T) {
	env := newServerEnv(t)
	env.seedProduct(t, "Classic Runner", 89.99)
	c, err := New(env.server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	user, err := c.Register(ctx, "jane@example.com", "password1", "Jane", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)

	// The auto-login session works immediately
	verified, err := c.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	products, err := c.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Classic Runner", products[0].Name)
}

func TestClientStoreMirrorsMutations(t *testing.T) {
	env := newServerEnv(t)
	env.seedUser(t, "jane@example.com", "password1", "user")
	env.seedProduct(t, "Classic Runner", 89.99)
	env.seedProduct(t, "Trail Blazer", 119.50)
	c, err := New(env.server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Login(ctx, "jane@example.com", "password1")
	require.NoError(t, err)

	// Favorite toggle mirrors in lockstep with the server response
	isFav, err := c.ToggleFavorite(ctx, "Classic Runner")
	require.NoError(t, err)
	assert.True(t, isFav)
	assert.True(t, c.Store().Favorites["Classic Runner"])

	isFav, err = c.ToggleFavorite(ctx, "Classic Runner")
	require.NoError(t, err)
	assert.False(t, isFav)
	assert.NotContains(t, c.Store().Favorites, "Classic Runner")

	// Cart adds accumulate in the mirror exactly as on the server
	for want := 1; want <= 3; want++ {
		qty, err := c.AddToCart(ctx, "Trail Blazer")
		require.NoError(t, err)
		assert.Equal(t, want, qty)
		assert.Equal(t, want, c.Store().Cart["Trail Blazer"])
	}
	require.NoError(t, c.RemoveFromCart(ctx, "Trail Blazer"))
	assert.NotContains(t, c.Store().Cart, "Trail Blazer")
}

func TestClientLoginRefreshesStoreWholesale(t *testing.T) {
	env := newServerEnv(t)
	user := env.seedUser(t, "jane@example.com", "password1", "user")
	fav := env.seedProduct(t, "Classic Runner", 89.99)
	line := env.seedProduct(t, "Trail Blazer", 119.50)
	require.NoError(t, env.db.Create(&domain.Favorite{UserID: user.ID, ProductID: fav.ID}).Error)
	require.NoError(t, env.db.Create(&domain.CartItem{UserID: user.ID, ProductID: line.ID, Quantity: 2}).Error)

	c, err := New(env.server.URL)
	require.NoError(t, err)
	_, err = c.Login(context.Background(), "jane@example.com", "password1")
	require.NoError(t, err)

	// Pre-existing server state appears in the mirror after login
	assert.True(t, c.Store().Favorites["Classic Runner"])
	assert.Equal(t, 2, c.Store().Cart["Trail Blazer"])
}

func TestClientRetriesOnceOnStaleCSRFToken(t *testing.T) {
	env := newServerEnv(t)
	env.seedUser(t, "jane@example.com", "password1", "user")
	env.seedProduct(t, "Classic Runner", 89.99)
	c, err := New(env.server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Login(ctx, "jane@example.com", "password1")
	require.NoError(t, err)

	// Warm the token cache with one successful mutation
	_, err = c.ToggleFavorite(ctx, "Classic Runner")
	require.NoError(t, err)

	// Rotate the token server-side; the cached one is now stale
	env.dropCSRFTokens()

	before := env.requests.Load()
	isFav, err := c.ToggleFavorite(ctx, "Classic Runner")
	require.NoError(t, err) // Recovered silently
	assert.False(t, isFav)  // The toggle still happened exactly once

	// Rejected attempt + token re-fetch + retried attempt: three round trips
	assert.Equal(t, before+3, env.requests.Load())
}

func TestClientLogoutResetsMirror(t *testing.T) {
	env := newServerEnv(t)
	env.seedUser(t, "jane@example.com", "password1", "user")
	env.seedProduct(t, "Classic Runner", 89.99)
	c, err := New(env.server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Login(ctx, "jane@example.com", "password1")
	require.NoError(t, err)
	_, err = c.AddToCart(ctx, "Classic Runner")
	require.NoError(t, err)
	require.NotEmpty(t, c.Store().Cart)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Store().Cart)
	assert.Empty(t, c.Store().Favorites)

	// The session is really gone
	_, err = c.Verify(ctx)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
