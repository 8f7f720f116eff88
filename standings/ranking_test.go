package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alcalius/padel-pro/models"
)

func intp(v int) *int { return &v }

func completed(team1, team2 []models.PlayerRef, score1, score2 int) models.Match {
	return models.Match{
		Team1:      team1,
		Team2:      team2,
		ScoreTeam1: intp(score1),
		ScoreTeam2: intp(score2),
		Status:     models.MatchStatusCompleted,
	}
}

func regs(ids ...int) []models.PlayerRef {
	out := make([]models.PlayerRef, len(ids))
	for i, id := range ids {
		out[i] = models.RegisteredPlayer(id)
	}
	return out
}

func entryFor(t *testing.T, entries []RankingEntry, ref models.PlayerRef) RankingEntry {
	t.Helper()
	for _, e := range entries {
		if e.Player == ref {
			return e
		}
	}
	t.Fatalf("no ranking entry for %s", ref)
	return RankingEntry{}
}

func TestComputeRankingSingleMatch(t *testing.T) {
	tournament := &models.Tournament{
		Players: []int{1, 2, 3, 4},
		Status:  models.TournamentStatusActive,
		Matches: []models.Match{
			completed(regs(1, 2), regs(3, 4), 3, 1),
		},
	}

	entries := ComputeRanking(tournament)
	require.Len(t, entries, 4)

	// Winners sort ahead of losers.
	assert.Equal(t, 3, entries[0].Points)
	assert.Equal(t, 3, entries[1].Points)
	assert.Equal(t, 1, entries[2].Points)
	assert.Equal(t, 1, entries[3].Points)

	p1 := entryFor(t, entries, models.RegisteredPlayer(1))
	assert.Equal(t, 1, p1.MatchesPlayed)
	assert.Equal(t, 1, p1.Wins)
	assert.InDelta(t, 3.0, p1.AverageScore, 1e-9)

	p3 := entryFor(t, entries, models.RegisteredPlayer(3))
	assert.Equal(t, 1, p3.MatchesPlayed)
	assert.Zero(t, p3.Wins)
	assert.InDelta(t, 1.0, p3.AverageScore, 1e-9)
}

func TestComputeRankingIgnoresPendingMatches(t *testing.T) {
	tournament := &models.Tournament{
		Players: []int{1, 2, 3, 4},
		Matches: []models.Match{
			{Team1: regs(1, 2), Team2: regs(3, 4), Status: models.MatchStatusPending},
		},
	}

	entries := ComputeRanking(tournament)
	require.Len(t, entries, 4)
	for _, e := range entries {
		assert.Zero(t, e.Points)
		assert.Zero(t, e.MatchesPlayed)
		assert.Zero(t, e.AverageScore)
	}
}

func TestComputeRankingAveragesAcrossMatches(t *testing.T) {
	tournament := &models.Tournament{
		Players: []int{1, 2, 3, 4},
		Matches: []models.Match{
			completed(regs(1, 2), regs(3, 4), 3, 1),
			completed(regs(1, 3), regs(2, 4), 2, 2),
			completed(regs(1, 4), regs(2, 3), 0, 4),
		},
	}

	entries := ComputeRanking(tournament)

	p1 := entryFor(t, entries, models.RegisteredPlayer(1))
	assert.Equal(t, 5, p1.Points)
	assert.Equal(t, 3, p1.MatchesPlayed)
	assert.Equal(t, 1, p1.Wins)
	assert.InDelta(t, 1.67, p1.AverageScore, 1e-9)
}

func TestComputeRankingIsIdempotent(t *testing.T) {
	tournament := &models.Tournament{
		Players: []int{1, 2, 3, 4},
		Matches: []models.Match{
			completed(regs(1, 2), regs(3, 4), 3, 1),
			completed(regs(1, 3), regs(2, 4), 4, 0),
		},
	}

	first := ComputeRanking(tournament)
	second := ComputeRanking(tournament)
	assert.Equal(t, first, second)
}

func TestComputeRankingResolvesGuestNames(t *testing.T) {
	guest := models.GuestPlayer(0)
	tournament := &models.Tournament{
		Players:      []int{1, 2, 3},
		GuestPlayers: []string{"Pedro"},
		Matches: []models.Match{
			completed([]models.PlayerRef{models.RegisteredPlayer(1), guest}, regs(2, 3), 3, 1),
		},
	}

	entries := ComputeRanking(tournament)
	require.Len(t, entries, 4)

	g := entryFor(t, entries, guest)
	assert.Equal(t, "Pedro", g.Name)
	assert.True(t, g.IsGuest)
	assert.Equal(t, 3, g.Points)
	assert.Equal(t, 1, g.Wins)
}

func TestComputeRankingSkipsStaleReferences(t *testing.T) {
	tournament := &models.Tournament{
		Players: []int{1, 2, 3, 4},
		// Player 9 left the roster but still appears in history.
		Matches: []models.Match{
			completed(regs(1, 9), regs(3, 4), 3, 1),
		},
	}

	entries := ComputeRanking(tournament)
	require.Len(t, entries, 4)
	for _, e := range entries {
		assert.NotEqual(t, models.RegisteredPlayer(9), e.Player)
	}

	p1 := entryFor(t, entries, models.RegisteredPlayer(1))
	assert.Equal(t, 3, p1.Points)
}

func TestResolvePlayer(t *testing.T) {
	tournament := &models.Tournament{
		GuestPlayers: []string{"Maria"},
	}
	users := map[int]models.User{
		7: {ID: 7, Name: "Ana", Avatar: "🎾"},
	}

	info := ResolvePlayer(models.RegisteredPlayer(7), tournament, users)
	assert.Equal(t, "Ana", info.Name)
	assert.Equal(t, "🎾", info.Avatar)
	assert.False(t, info.IsGuest)

	info = ResolvePlayer(models.GuestPlayer(0), tournament, users)
	assert.Equal(t, "Maria", info.Name)
	assert.True(t, info.IsGuest)

	info = ResolvePlayer(models.GuestPlayer(5), tournament, users)
	assert.Equal(t, models.UnknownPlayerName, info.Name)

	info = ResolvePlayer(models.RegisteredPlayer(99), tournament, users)
	assert.Equal(t, models.UnknownPlayerName, info.Name)
}
