package models

import "time"

// TournamentStatus represents the lifecycle of a tournament. Completed
// tournaments can be reopened, so the transition is reversible.
type TournamentStatus string

const (
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
)

// Tournament is a doubles competition within one club. Players holds
// club member ids; GuestPlayers holds display names of non-registered
// participants, referenced by index from match teams.
type Tournament struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	ClubID       int              `json:"club_id"`
	CreatedBy    int              `json:"created_by"`
	Players      []int            `json:"players"`
	GuestPlayers []string         `json:"guest_players"`
	Status       TournamentStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`

	Matches []Match `json:"matches,omitempty"`
}

// AllPlayerRefs returns the full player pool of the tournament:
// every roster member plus one guest ref per guest list entry.
func (t *Tournament) AllPlayerRefs() []PlayerRef {
	refs := make([]PlayerRef, 0, len(t.Players)+len(t.GuestPlayers))
	for _, id := range t.Players {
		refs = append(refs, RegisteredPlayer(id))
	}
	for i := range t.GuestPlayers {
		refs = append(refs, GuestPlayer(i))
	}
	return refs
}

// HasPlayer reports whether the ref belongs to the tournament roster,
// either as a club member or as a valid guest index.
func (t *Tournament) HasPlayer(p PlayerRef) bool {
	if p.IsGuest {
		return p.GuestIndex >= 0 && p.GuestIndex < len(t.GuestPlayers)
	}
	for _, id := range t.Players {
		if id == p.UserID {
			return true
		}
	}
	return false
}

// GuestName resolves a guest index against the tournament's guest
// list, falling back to UnknownPlayerName for out-of-range indexes.
func (t *Tournament) GuestName(index int) string {
	if index < 0 || index >= len(t.GuestPlayers) {
		return UnknownPlayerName
	}
	return t.GuestPlayers[index]
}
