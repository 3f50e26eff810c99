// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents an application user backing an external identity.
// Records are created lazily the first time an authenticated identity
// touches the API; they are never deleted here (account removal lives
// with the identity provider).
type User struct {
	// ID is the internal numeric identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the join key between the external identity and local
	// storage. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is a legacy schema placeholder and is always empty.
	// Authentication happens entirely at the identity provider.
	Password string `gorm:"size:255;not null;default:''"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
