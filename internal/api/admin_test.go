package api

import (
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminEnv creates an admin account, logs it in, and returns its session
func adminEnv(t *testing.T) (*testEnv, domain.User, []*http.Cookie, string) {
	t.Helper()
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "password1", domain.RoleAdmin, true)
	cookies := env.login(t, "admin@example.com", "password1")
	token := env.csrf(t, cookies)
	return env, admin, cookies, token
}

func TestAdminRoutesRejectRegularUsers(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "plain@example.com", "password1", domain.RoleUser, true)
	cookies := env.login(t, "plain@example.com", "password1")

	w := env.request(t, http.MethodGet, "/api/admin/users", nil, cookies, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/admin/stats", nil, cookies, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCannotModifyOwnAccount(t *testing.T) {
	env, admin, cookies, token := adminEnv(t)

	// Role change on self fails before any write
	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", admin.ID),
		map[string]any{"role": "user"}, cookies, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Self-deletion fails the same way
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", admin.ID), nil, cookies, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The row is untouched
	var fresh domain.User
	require.NoError(t, env.db.First(&fresh, admin.ID).Error)
	assert.Equal(t, domain.RoleAdmin, fresh.Role)
	assert.True(t, fresh.Active)
}

func TestAdminUpdateWhitelistsFields(t *testing.T) {
	env, _, cookies, token := adminEnv(t)
	target := env.createUser(t, "target@example.com", "password1", domain.RoleUser, true)

	// Unknown fields are silently ignored, whitelisted ones applied
	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", target.ID),
		map[string]any{"role": "admin", "email": "hax@example.com", "firstName": "Hax"}, cookies, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fresh domain.User
	require.NoError(t, env.db.First(&fresh, target.ID).Error)
	assert.Equal(t, domain.RoleAdmin, fresh.Role)
	assert.Equal(t, "target@example.com", fresh.Email) // Not whitelisted, unchanged
	assert.Equal(t, "Test", fresh.FirstName)           // Not whitelisted, unchanged

	// A payload with no whitelisted field at all is rejected
	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", target.ID),
		map[string]any{"email": "still@example.com"}, cookies, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "No valid changes", resp.Message)

	// An out-of-range role is rejected too
	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", target.ID),
		map[string]any{"role": "superuser"}, cookies, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPromotionShowsUpInStats(t *testing.T) {
	env, _, cookies, token := adminEnv(t)
	target := env.createUser(t, "target@example.com", "password1", domain.RoleUser, true)

	stats := fetchStats(t, env, cookies)
	before := stats.TotalAdmins

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", target.ID),
		map[string]any{"role": "admin"}, cookies, token)
	require.Equal(t, http.StatusOK, w.Code)

	stats = fetchStats(t, env, cookies)
	assert.Equal(t, before+1, stats.TotalAdmins)
	assert.Equal(t, stats.TotalUsers-stats.TotalAdmins, stats.RegularUsers)
}

// statsPayload mirrors the stats handler response
type statsPayload struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalAdmins   int64 `json:"totalAdmins"`
	RegularUsers  int64 `json:"regularUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	TotalProducts int64 `json:"totalProducts"`
}

func fetchStats(t *testing.T, env *testEnv, cookies []*http.Cookie) statsPayload {
	t.Helper()
	w := env.request(t, http.MethodGet, "/api/admin/stats", nil, cookies, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Stats statsPayload `json:"stats"`
	}
	decode(t, w, &resp)
	return resp.Stats
}

func TestDeleteUserCascades(t *testing.T) {
	env, _, cookies, token := adminEnv(t)
	target := env.createUser(t, "target@example.com", "password1", domain.RoleUser, true)
	product := env.createProduct(t, "Classic Runner", 89.99)

	// Give the target a favorite and a cart line
	require.NoError(t, env.db.Create(&domain.Favorite{UserID: target.ID, ProductID: product.ID}).Error)
	require.NoError(t, env.db.Create(&domain.CartItem{UserID: target.ID, ProductID: product.ID, Quantity: 2}).Error)

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", target.ID), nil, cookies, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The account and its dependent rows are gone
	var count int64
	require.NoError(t, env.db.Model(&domain.User{}).Where("id = ?", target.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&domain.Favorite{}).Where("user_id = ?", target.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&domain.CartItem{}).Where("user_id = ?", target.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdminUpdateUnknownUser(t *testing.T) {
	env, _, cookies, token := adminEnv(t)
	w := env.request(t, http.MethodPut, "/api/admin/users/99999",
		map[string]any{"role": "admin"}, cookies, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminAddProductRejectsDuplicateName(t *testing.T) {
	env, _, cookies, token := adminEnv(t)
	env.createProduct(t, "Classic Runner", 89.99)

	// Names are the lookup key for favorites and cart, so they are unique
	w := env.request(t, http.MethodPost, "/api/admin/products",
		map[string]any{"name": "Classic Runner", "price": 99.99}, cookies, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Product name already exists", resp.Message)

	// A fresh name is accepted
	w = env.request(t, http.MethodPost, "/api/admin/products",
		map[string]any{"name": "Night Sprinter", "price": 129.99, "brand": "Stride"}, cookies, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAdminAddProductValidation(t *testing.T) {
	env, _, cookies, token := adminEnv(t)

	// Missing price
	w := env.request(t, http.MethodPost, "/api/admin/products",
		map[string]any{"name": "Freebie"}, cookies, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Negative price
	w = env.request(t, http.MethodPost, "/api/admin/products",
		map[string]any{"name": "Refund Shoe", "price": -5.0}, cookies, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
