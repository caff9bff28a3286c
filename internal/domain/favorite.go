package domain

import "time"

// Favorite Model: one row per (user, product) pair
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                           // Primary key
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_pair" json:"userId"` // Foreign key to User
	ProductID uint      `gorm:"not null;uniqueIndex:idx_fav_pair" json:"productId"` // Foreign key to Product
	CreatedAt time.Time `json:"createdAt"`                                      // Timestamp of creation

	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`                      // Cascade-deleted with the user
	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"` // Loaded with Preload
}
