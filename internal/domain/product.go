package domain

import "time"

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Name        string    `gorm:"uniqueIndex;not null" json:"name"` // Unique name, used as lookup key in URLs
	Brand       string    `json:"brand"`                            // Brand label
	Description string    `json:"description"`                      // Free-form description
	Price       float64   `gorm:"not null" json:"price"`            // Unit price
	Emoji       string    `json:"emoji"`                            // Display glyph
	SizeRange   string    `json:"sizeRange"`                        // Human-readable size range
	CreatedAt   time.Time `json:"createdAt"`                        // Timestamp of creation
}
