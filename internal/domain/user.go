package domain

import "time"

// Role values
const (
	RoleUser  = "user"  // Regular customer
	RoleAdmin = "admin" // Administrator
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Email     string    `gorm:"uniqueIndex;not null" json:"email"` // Unique email, stored lowercased
	Password  string    `gorm:"not null" json:"-"`                // Bcrypt hash, never serialized
	FirstName string    `gorm:"not null" json:"firstName"`        // First name
	LastName  string    `gorm:"not null" json:"lastName"`         // Last name
	Role      string    `gorm:"default:user" json:"role"`         // Role: user or admin
	Active    bool      `gorm:"default:true" json:"active"`       // Disabled accounts cannot log in
	CreatedAt time.Time `json:"createdAt"`                        // Timestamp of creation
}

// IsAdmin reports whether the user holds the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
