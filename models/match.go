package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusCompleted MatchStatus = "completed"
)

// MatchScoreTotal is the fixed number of games in one recorded padel
// set: the two team scores always sum to exactly 4.
const MatchScoreTotal = 4

// Match is one scheduled 2v2 game. While pending both scores are nil;
// once completed both are set and sum to MatchScoreTotal. Teams are
// disjoint and hold two players each whenever the tournament has at
// least four players.
type Match struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournament_id"`
	Team1        []PlayerRef `json:"team1"`
	Team2        []PlayerRef `json:"team2"`
	ScoreTeam1   *int        `json:"score_team1"`
	ScoreTeam2   *int        `json:"score_team2"`
	Status       MatchStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Players returns all participants of the match, team1 first.
func (m *Match) Players() []PlayerRef {
	refs := make([]PlayerRef, 0, len(m.Team1)+len(m.Team2))
	refs = append(refs, m.Team1...)
	refs = append(refs, m.Team2...)
	return refs
}

// HasPlayer reports whether the given player takes part in the match.
func (m *Match) HasPlayer(p PlayerRef) bool {
	for _, ref := range m.Players() {
		if ref == p {
			return true
		}
	}
	return false
}

// IsCompleted reports whether both scores have been recorded.
func (m *Match) IsCompleted() bool {
	return m.Status == MatchStatusCompleted && m.ScoreTeam1 != nil && m.ScoreTeam2 != nil
}
