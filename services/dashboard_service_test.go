package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alcalius/padel-pro/models"
)

func TestDashboardOverview(t *testing.T) {
	tournamentRepo := newFakeTournamentRepo()
	matchRepo := newFakeMatchRepo()
	clubRepo := newFakeClubRepo()
	userRepo := newFakeUserRepo()
	service := NewDashboardService(tournamentRepo, matchRepo, clubRepo, userRepo)
	ctx := context.Background()

	var userIDs []int
	for _, name := range []string{"ana", "bea", "carla", "dora"} {
		u := &models.User{Name: name, Email: name + "@test.dev", PasswordHash: "x"}
		require.NoError(t, userRepo.Create(ctx, u))
		userIDs = append(userIDs, u.ID)
	}

	club := &models.Club{Name: "Padel Norte", CreatedBy: userIDs[0], PasswordHash: "x"}
	require.NoError(t, clubRepo.Create(ctx, club))
	for _, id := range userIDs {
		require.NoError(t, clubRepo.AddMember(ctx, club.ID, id))
		require.NoError(t, userRepo.SetActiveClub(ctx, id, &club.ID))
	}

	tournament := &models.Tournament{
		Name:    "League",
		ClubID:  club.ID,
		Players: userIDs,
		Status:  models.TournamentStatusActive,
	}
	require.NoError(t, tournamentRepo.Create(ctx, nil, tournament))

	s1, s2 := 3, 1
	match := &models.Match{
		TournamentID: tournament.ID,
		Team1:        []models.PlayerRef{models.RegisteredPlayer(userIDs[0]), models.RegisteredPlayer(userIDs[1])},
		Team2:        []models.PlayerRef{models.RegisteredPlayer(userIDs[2]), models.RegisteredPlayer(userIDs[3])},
		ScoreTeam1:   &s1,
		ScoreTeam2:   &s2,
		Status:       models.MatchStatusCompleted,
	}
	require.NoError(t, matchRepo.Create(ctx, nil, match))

	overview, err := service.Overview(ctx, userIDs[0])
	require.NoError(t, err)

	assert.Equal(t, 1, overview.Summary.TotalMatches)
	assert.Equal(t, 1, overview.Summary.TotalWins)
	assert.Equal(t, 3, overview.Summary.TotalPoints)
	assert.Equal(t, 1, overview.Summary.ActiveTournaments)

	require.Len(t, overview.ClubRanking, 4)
	assert.Equal(t, "ana", overview.ClubRanking[0].Name)
	assert.InDelta(t, 3.0, overview.ClubRanking[0].AvgPointsPerMatch, 1e-9)

	require.Len(t, overview.RecentMatches, 1)
	assert.Equal(t, "League", overview.RecentMatches[0].TournamentName)
}

func TestDashboardOverviewNoActiveClub(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewDashboardService(newFakeTournamentRepo(), newFakeMatchRepo(), newFakeClubRepo(), userRepo)
	ctx := context.Background()

	u := &models.User{Name: "ana", Email: "ana@test.dev", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(ctx, u))

	overview, err := service.Overview(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, overview.Summary.TotalMatches)
	assert.Empty(t, overview.ClubRanking)
	assert.Empty(t, overview.RecentMatches)
}

func TestDashboardOverviewUnknownUser(t *testing.T) {
	service := NewDashboardService(newFakeTournamentRepo(), newFakeMatchRepo(), newFakeClubRepo(), newFakeUserRepo())

	_, err := service.Overview(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
