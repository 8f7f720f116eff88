package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnknownPlayerName is the display fallback for references that no
// longer resolve to a user or a guest entry.
const UnknownPlayerName = "unknown player"

const guestRefPrefix = "guest-"

// PlayerRef identifies one tournament participant: either a registered
// user by id, or a guest by index into the tournament's guest list.
// On the wire a registered player is a JSON number and a guest is the
// string "guest-N", so stored match teams survive roster lookups in
// both directions. The zero UserID/GuestIndex fields keep the struct
// comparable and usable as a map key.
type PlayerRef struct {
	UserID     int
	GuestIndex int
	IsGuest    bool
}

func RegisteredPlayer(userID int) PlayerRef {
	return PlayerRef{UserID: userID}
}

func GuestPlayer(index int) PlayerRef {
	return PlayerRef{GuestIndex: index, IsGuest: true}
}

// String renders the wire form: "guest-N" for guests, the decimal user
// id otherwise.
func (p PlayerRef) String() string {
	if p.IsGuest {
		return guestRefPrefix + strconv.Itoa(p.GuestIndex)
	}
	return strconv.Itoa(p.UserID)
}

func (p PlayerRef) MarshalJSON() ([]byte, error) {
	if p.IsGuest {
		return json.Marshal(p.String())
	}
	return json.Marshal(p.UserID)
}

func (p *PlayerRef) UnmarshalJSON(data []byte) error {
	var userID int
	if err := json.Unmarshal(data, &userID); err == nil {
		*p = RegisteredPlayer(userID)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("player ref must be a user id or a guest string: %w", err)
	}
	if !strings.HasPrefix(s, guestRefPrefix) {
		return fmt.Errorf("invalid player ref %q", s)
	}
	index, err := strconv.Atoi(strings.TrimPrefix(s, guestRefPrefix))
	if err != nil {
		return fmt.Errorf("invalid guest index in player ref %q: %w", s, err)
	}
	*p = GuestPlayer(index)
	return nil
}

// PlayerInfo is the resolved display form of a PlayerRef.
type PlayerInfo struct {
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	IsGuest bool   `json:"is_guest"`
}
