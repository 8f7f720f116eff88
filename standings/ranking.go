// Package standings derives rankings and aggregate statistics from
// completed matches. Everything here is a pure function of its inputs:
// nothing is cached, persisted, or mutated.
package standings

import (
	"math"
	"sort"

	"github.com/Alcalius/padel-pro/models"
)

// RankingEntry is one row of a tournament's standings table.
type RankingEntry struct {
	Player        models.PlayerRef `json:"player"`
	Name          string           `json:"name"`
	IsGuest       bool             `json:"is_guest"`
	Points        int              `json:"points"`
	MatchesPlayed int              `json:"matches_played"`
	Wins          int              `json:"wins"`
	AverageScore  float64          `json:"average_score"`
}

// ComputeRanking folds a tournament's completed matches into one entry
// per roster player and guest, sorted by total points descending
// (input order is kept for ties). Match references to players outside
// the roster are skipped rather than treated as an error: the match
// list may outlive a roster edit.
//
// Guest names are resolved against the tournament's guest list;
// registered names are left to the caller, which owns the user
// registry.
func ComputeRanking(t *models.Tournament) []RankingEntry {
	refs := t.AllPlayerRefs()
	index := make(map[models.PlayerRef]int, len(refs))
	entries := make([]RankingEntry, len(refs))
	for i, ref := range refs {
		index[ref] = i
		entries[i] = RankingEntry{Player: ref, IsGuest: ref.IsGuest}
		if ref.IsGuest {
			entries[i].Name = t.GuestName(ref.GuestIndex)
		}
	}

	for i := range t.Matches {
		match := &t.Matches[i]
		if !match.IsCompleted() {
			continue
		}
		creditTeam(entries, index, match.Team1, *match.ScoreTeam1, *match.ScoreTeam2)
		creditTeam(entries, index, match.Team2, *match.ScoreTeam2, *match.ScoreTeam1)
	}

	for i := range entries {
		entries[i].AverageScore = averageScore(entries[i].Points, entries[i].MatchesPlayed)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}

func creditTeam(entries []RankingEntry, index map[models.PlayerRef]int, team []models.PlayerRef, own, opponent int) {
	for _, p := range team {
		i, ok := index[p]
		if !ok {
			continue
		}
		entries[i].Points += own
		entries[i].MatchesPlayed++
		if own > opponent {
			entries[i].Wins++
		}
	}
}

// averageScore is points per match rounded to two decimals, zero for
// players without a completed match.
func averageScore(points, played int) float64 {
	if played == 0 {
		return 0
	}
	return math.Round(float64(points)/float64(played)*100) / 100
}

// ResolvePlayer turns a player reference into display data using the
// user registry and, for guests, the owning tournament's guest list.
// Unknown references resolve to a sentinel name instead of failing.
func ResolvePlayer(ref models.PlayerRef, t *models.Tournament, usersByID map[int]models.User) models.PlayerInfo {
	if ref.IsGuest {
		return models.PlayerInfo{
			Name:    t.GuestName(ref.GuestIndex),
			Avatar:  "👤",
			IsGuest: true,
		}
	}
	user, ok := usersByID[ref.UserID]
	if !ok {
		return models.PlayerInfo{Name: models.UnknownPlayerName, Avatar: "👤"}
	}
	return models.PlayerInfo{Name: user.Name, Avatar: user.Avatar}
}
