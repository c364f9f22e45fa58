package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"` // Unique username
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`   // Unique email
	Password  string    `gorm:"not null" json:"-"`                            // bcrypt hash, never serialized
	Country   string    `gorm:"size:128;not null" json:"country"`             // Home country name
	Currency  string    `gorm:"size:8" json:"currency,omitempty"`             // ISO 4217 code, optional
	CreatedAt time.Time `json:"createdAt"`                                    // Registration time
	UpdatedAt time.Time `json:"updatedAt"`                                    // Last profile update
}

// Identity is what a session token carries and what handlers act as
type Identity struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username at login time
}
