package scheduling

import "github.com/Alcalius/padel-pro/models"

// PlayerStats is the per-player view of a tournament's match history,
// recomputed from scratch whenever a new match must be generated.
type PlayerStats struct {
	GamesPlayed      int
	GamesWaiting     int
	ConsecutiveWaits int

	// Partners and Opponents count how many times this player shared a
	// team with, or faced, each other player.
	Partners  map[models.PlayerRef]int
	Opponents map[models.PlayerRef]int
}

// BuildPlayerStats folds the match history, in order, into per-player
// statistics. A player waiting out a match accrues one consecutive
// wait; playing resets the streak. Inputs are not mutated.
func BuildPlayerStats(players []models.PlayerRef, matches []models.Match) map[models.PlayerRef]*PlayerStats {
	stats := make(map[models.PlayerRef]*PlayerStats, len(players))
	for _, p := range players {
		stats[p] = &PlayerStats{
			Partners:  make(map[models.PlayerRef]int),
			Opponents: make(map[models.PlayerRef]int),
		}
	}

	for i := range matches {
		match := &matches[i]
		playing := make(map[models.PlayerRef]bool, 4)
		for _, p := range match.Players() {
			playing[p] = true
		}

		for _, p := range match.Players() {
			st, ok := stats[p]
			if !ok {
				// Stale reference: the player left the roster. Skip.
				continue
			}
			st.GamesPlayed++
			st.ConsecutiveWaits = 0
			recordTeammates(st, p, match.Team1, match.Team2)
		}

		for _, p := range players {
			if playing[p] {
				continue
			}
			st := stats[p]
			st.GamesWaiting++
			st.ConsecutiveWaits++
		}
	}

	return stats
}

func recordTeammates(st *PlayerStats, p models.PlayerRef, team1, team2 []models.PlayerRef) {
	own, other := team1, team2
	if !containsRef(team1, p) {
		own, other = team2, team1
	}
	for _, partner := range own {
		if partner != p {
			st.Partners[partner]++
		}
	}
	for _, opponent := range other {
		st.Opponents[opponent]++
	}
}

func containsRef(refs []models.PlayerRef, p models.PlayerRef) bool {
	for _, ref := range refs {
		if ref == p {
			return true
		}
	}
	return false
}
