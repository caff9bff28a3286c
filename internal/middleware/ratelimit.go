package middleware

import (
	"bytes"         // Body restoration after peeking
	"encoding/json" // Peeking at the email field
	"io"            // Body reading
	"net/http"      // HTTP status codes
	"strings"       // Email normalization
	"time"          // Window durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Rate limit windows and budgets
const (
	RateWindow   = 15 * time.Minute // Shared fixed window
	APIRateMax   = 200              // Requests per window per client address
	AuthRateMax  = 10               // Login/register attempts per window per (address, email)
)

// allow increments a fixed-window counter and reports whether the request
// is within budget. The window TTL is set when the counter is created.
func allow(c *gin.Context, rdb *redis.Client, key string, max int) bool {
	ctx := c.Request.Context()
	count, err := rdb.Incr(ctx, key).Result() // Count this request
	if err != nil {
		// A broken limiter must not take the API down with it
		logrus.WithField("error", err.Error()).Warn("Rate limiter unavailable, allowing request")
		return true
	}
	if count == 1 {
		rdb.Expire(ctx, key, RateWindow) // First hit opens the window
	}
	return count <= int64(max)
}

// tooMany aborts the request with the shared 429 envelope
func tooMany(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many requests, please try again later"})
}

// APIRateLimit limits every API request to APIRateMax per window per
// client address
func APIRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c, rdb, "rl:api:"+c.ClientIP(), APIRateMax) {
			tooMany(c) // Budget exhausted
			return
		}
		c.Next() // Within budget
	}
}

// AuthRateLimit limits login/register attempts to AuthRateMax per window
// per (client address, email) pair. The email is peeked from the JSON body
// and the body is restored so the handler can bind it again.
func AuthRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:auth:" + c.ClientIP()
		if email := peekEmail(c); email != "" {
			key += ":" + email // Scope the budget to the attempted account
		}
		if !allow(c, rdb, key, AuthRateMax) {
			tooMany(c) // Budget exhausted
			return
		}
		c.Next() // Within budget
	}
}

// peekLimit caps how much of an unauthenticated body the limiter will
// read; a login payload fits in a fraction of this
const peekLimit = 8 << 10

// peekEmail reads the email field out of the request body without
// consuming it
func peekEmail(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, peekLimit))
	if err != nil {
		return ""
	}
	// Hand the bytes back, followed by whatever the limit left unread,
	// so ShouldBindJSON still sees the whole body downstream
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
	var probe struct {
		Email string `json:"email"` // Only field we care about
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(probe.Email))
}
