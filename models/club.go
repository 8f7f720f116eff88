package models

import "time"

// Club is a named group of players protected by a join password.
// Tournaments are always scoped to one club.
type Club struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	CreatedBy    int       `json:"created_by"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`

	Members []User `json:"members,omitempty"`
}
