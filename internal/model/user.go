// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the base identity record created at first sign-in. It carries only
// what the identity provider returned; role membership is expressed by the
// existence of a profile row, never by a field on the user.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"uid"`
	GoogleID     *string   `gorm:"uniqueIndex" json:"-"`
	GithubID     *string   `gorm:"uniqueIndex" json:"-"`
	DisplayName  string    `gorm:"type:text" json:"name"`
	Email        string    `gorm:"type:text" json:"email"`
	PhotoURL     string    `gorm:"type:text" json:"photoURL"`
	// Provider username, only filled by GitHub sign-ins.
	ProviderUsername string `gorm:"type:text" json:"providerUsername,omitempty"`

	// Stored raw; resolution to light/dark happens in the theme package.
	ThemePreference string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"-"`
}
