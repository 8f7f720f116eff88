package models

// PlayerSummary aggregates a user's completed matches across all
// tournaments of one club. Derived data, never persisted.
type PlayerSummary struct {
	TotalMatches      int     `json:"total_matches"`
	TotalWins         int     `json:"total_wins"`
	TotalLosses       int     `json:"total_losses"`
	TotalPoints       int     `json:"total_points"`
	WinRate           int     `json:"win_rate"`
	AvgPointsPerMatch float64 `json:"avg_points_per_match"`
	TournamentsCount  int     `json:"tournaments_count"`
	ActiveTournaments int     `json:"active_tournaments"`
}

// ClubRankingEntry is one row of a club-wide leaderboard built from
// the club's active tournaments.
type ClubRankingEntry struct {
	UserID            int     `json:"user_id"`
	Name              string  `json:"name"`
	Avatar            string  `json:"avatar"`
	TotalMatches      int     `json:"total_matches"`
	TotalPoints       int     `json:"total_points"`
	TotalWins         int     `json:"total_wins"`
	AvgPointsPerMatch float64 `json:"avg_points_per_match"`
	WinRate           int     `json:"win_rate"`
}

// RecentMatch is a completed match decorated with its tournament name
// for the dashboard's recent-activity feed.
type RecentMatch struct {
	Match
	TournamentName string `json:"tournament_name"`
}
