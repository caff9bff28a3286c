package client

import (
	"fmt"  // Error formatting
	"time" // Timestamps
)

// User mirrors the server's account shape
type User struct {
	ID        uint      `json:"id"`        // Account id
	Email     string    `json:"email"`     // Email
	FirstName string    `json:"firstName"` // First name
	LastName  string    `json:"lastName"`  // Last name
	Role      string    `json:"role"`      // "user" or "admin"
	Active    bool      `json:"active"`    // Enabled flag
	CreatedAt time.Time `json:"createdAt"` // Creation timestamp
}

// Product mirrors a catalog entry
type Product struct {
	ID          uint      `json:"id"`          // Product id
	Name        string    `json:"name"`        // Unique name, the URL lookup key
	Brand       string    `json:"brand"`       // Brand label
	Description string    `json:"description"` // Description
	Price       float64   `json:"price"`       // Unit price
	Emoji       string    `json:"emoji"`       // Display glyph
	SizeRange   string    `json:"sizeRange"`   // Size range
	CreatedAt   time.Time `json:"createdAt"`   // Creation timestamp
}

// Favorite mirrors one favorites row with its product
type Favorite struct {
	ID        uint    `json:"id"`        // Row id
	ProductID uint    `json:"productId"` // Product id
	Product   Product `json:"product"`   // Full product details
}

// CartLine mirrors one cart row with its product
type CartLine struct {
	ID        uint    `json:"id"`        // Row id
	ProductID uint    `json:"productId"` // Product id
	Quantity  int     `json:"quantity"`  // Units in the cart
	Product   Product `json:"product"`   // Full product details
}

// Stats mirrors the admin dashboard counters
type Stats struct {
	TotalUsers    int64 `json:"totalUsers"`    // All accounts
	TotalAdmins   int64 `json:"totalAdmins"`   // Administrator accounts
	RegularUsers  int64 `json:"regularUsers"`  // totalUsers - totalAdmins
	ActiveUsers   int64 `json:"activeUsers"`   // Enabled accounts
	TotalProducts int64 `json:"totalProducts"` // Catalog size
}

// UserUpdate carries the two fields an admin may change; nil means unchanged
type UserUpdate struct {
	Role   *string `json:"role,omitempty"`   // "user" or "admin"
	Active *bool   `json:"active,omitempty"` // Enable/disable
}

// NewProduct is the admin product creation payload
type NewProduct struct {
	Name        string  `json:"name"`        // Product name
	Brand       string  `json:"brand"`       // Brand label
	Description string  `json:"description"` // Description
	Price       float64 `json:"price"`       // Unit price
	Emoji       string  `json:"emoji"`       // Display glyph
	SizeRange   string  `json:"sizeRange"`   // Size range
}

// APIError is a non-success response from the server
type APIError struct {
	Status  int    // HTTP status code
	Message string // Server-provided message
	Code    string // Machine-readable code, "csrf" on token mismatch
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsCSRF reports whether the error is a CSRF token rejection
func (e *APIError) IsCSRF() bool {
	return e.Code == "csrf"
}
