package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/config"
	dbpkg "storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/session"
	"storefront/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv bundles a router with its backing stores for one test
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	rdb    *redis.Client
	mr     *miniredis.Miniredis
	store  *session.Store
}

// newTestEnv spins up an in-memory sqlite database and an in-process
// Redis, then builds the full router on top of them
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A uniquely named shared-cache memory DB survives gorm's pooling
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, dbpkg.AutoMigrate(gdb))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewStore(rdb)

	cfg := &config.Config{} // No CORS, no static dir, dev mode
	return &testEnv{
		router: NewRouter(cfg, gdb, rdb, store),
		db:     gdb,
		rdb:    rdb,
		mr:     mr,
		store:  store,
	}
}

// createUser inserts an account directly, bypassing the API
func (e *testEnv) createUser(t *testing.T, email, password, role string, active bool) domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := domain.User{
		Email:     utils.NormalizeEmail(email),
		Password:  hash,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Active:    active,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

// createProduct inserts a catalog entry directly
func (e *testEnv) createProduct(t *testing.T, name string, price float64) domain.Product {
	t.Helper()
	product := domain.Product{Name: name, Brand: "TestBrand", Price: price, Emoji: "👟", SizeRange: "38-44"}
	require.NoError(t, e.db.Create(&product).Error)
	return product
}

// request performs one request against the router, attaching any cookies
// and an optional CSRF token
func (e *testEnv) request(t *testing.T, method, path string, body any, cookies []*http.Cookie, csrfToken string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if csrfToken != "" {
		req.Header.Set("X-CSRF-Token", csrfToken)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// login performs an API login and returns the session cookies
func (e *testEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, nil, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

// csrf fetches the anti-forgery token for a logged-in session
func (e *testEnv) csrf(t *testing.T, cookies []*http.Cookie) string {
	t.Helper()
	w := e.request(t, http.MethodGet, "/api/csrf-token", nil, cookies, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		CSRFToken string `json:"csrfToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.CSRFToken)
	return resp.CSRFToken
}

// decode unmarshals a recorded response body into dest
func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
