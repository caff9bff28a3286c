package domain

import "time"

// CartItem Model: one row per (user, product) pair with a quantity
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                // Primary key
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_pair" json:"userId"`    // Foreign key to User
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_pair" json:"productId"` // Foreign key to Product
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`                  // Always >= 1; removal deletes the row
	CreatedAt time.Time `json:"createdAt"`                                           // Timestamp of creation

	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`                 // Cascade-deleted with the user
	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"` // Loaded with Preload
}
