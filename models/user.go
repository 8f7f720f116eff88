package models

import "time"

type User struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Avatar          string    `json:"avatar"`
	ActiveClubID    *int      `json:"active_club_id,omitempty"`
	ClubMemberships []int     `json:"club_memberships,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	ProfilePictureKey *string `json:"-"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}
