package standings

import (
	"math"
	"sort"

	"github.com/Alcalius/padel-pro/models"
)

// PlayerSummary folds one user's completed matches across a set of
// tournaments into dashboard statistics. The cross-tournament fold is
// plain summation over per-match contributions.
func PlayerSummary(userID int, tournaments []models.Tournament) models.PlayerSummary {
	summary := models.PlayerSummary{TournamentsCount: len(tournaments)}
	ref := models.RegisteredPlayer(userID)

	for i := range tournaments {
		t := &tournaments[i]
		if t.Status == models.TournamentStatusActive && t.HasPlayer(ref) {
			summary.ActiveTournaments++
		}
		for j := range t.Matches {
			own, opponent, ok := playerScores(&t.Matches[j], ref)
			if !ok {
				continue
			}
			summary.TotalMatches++
			summary.TotalPoints += own
			if own > opponent {
				summary.TotalWins++
			}
		}
	}

	summary.TotalLosses = summary.TotalMatches - summary.TotalWins
	if summary.TotalMatches > 0 {
		summary.WinRate = int(math.Round(float64(summary.TotalWins) / float64(summary.TotalMatches) * 100))
		summary.AvgPointsPerMatch = round1(float64(summary.TotalPoints) / float64(summary.TotalMatches))
	}
	return summary
}

// ClubRanking builds a leaderboard over the club's members from the
// given tournaments, sorted by average points per match, win rate
// breaking ties.
func ClubRanking(members []models.User, tournaments []models.Tournament) []models.ClubRankingEntry {
	entries := make([]models.ClubRankingEntry, 0, len(members))

	for _, member := range members {
		entry := models.ClubRankingEntry{
			UserID: member.ID,
			Name:   member.Name,
			Avatar: member.Avatar,
		}
		ref := models.RegisteredPlayer(member.ID)

		for i := range tournaments {
			t := &tournaments[i]
			for j := range t.Matches {
				own, opponent, ok := playerScores(&t.Matches[j], ref)
				if !ok {
					continue
				}
				entry.TotalMatches++
				entry.TotalPoints += own
				if own > opponent {
					entry.TotalWins++
				}
			}
		}

		if entry.TotalMatches > 0 {
			entry.AvgPointsPerMatch = round1(float64(entry.TotalPoints) / float64(entry.TotalMatches))
			entry.WinRate = int(math.Round(float64(entry.TotalWins) / float64(entry.TotalMatches) * 100))
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AvgPointsPerMatch != entries[j].AvgPointsPerMatch {
			return entries[i].AvgPointsPerMatch > entries[j].AvgPointsPerMatch
		}
		return entries[i].WinRate > entries[j].WinRate
	})
	return entries
}

// RecentMatches returns the user's most recent completed matches,
// newest first, capped at limit.
func RecentMatches(userID int, tournaments []models.Tournament, limit int) []models.RecentMatch {
	ref := models.RegisteredPlayer(userID)
	recent := make([]models.RecentMatch, 0)

	for i := range tournaments {
		t := &tournaments[i]
		for j := range t.Matches {
			match := &t.Matches[j]
			if match.IsCompleted() && match.HasPlayer(ref) {
				recent = append(recent, models.RecentMatch{
					Match:          *match,
					TournamentName: t.Name,
				})
			}
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// playerScores extracts a player's own and opposing score from a
// completed match, reporting false when the player did not take part
// or the match has no recorded result.
func playerScores(m *models.Match, ref models.PlayerRef) (own, opponent int, ok bool) {
	if !m.IsCompleted() {
		return 0, 0, false
	}
	for _, p := range m.Team1 {
		if p == ref {
			return *m.ScoreTeam1, *m.ScoreTeam2, true
		}
	}
	for _, p := range m.Team2 {
		if p == ref {
			return *m.ScoreTeam2, *m.ScoreTeam1, true
		}
	}
	return 0, 0, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
