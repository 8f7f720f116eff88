package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Alcalius/padel-pro/models"
	"github.com/Alcalius/padel-pro/repositories"
	"github.com/Alcalius/padel-pro/standings"
)

const recentMatchesLimit = 3

type DashboardService interface {
	Overview(ctx context.Context, userID int) (*DashboardOverview, error)
}

type DashboardOverview struct {
	Summary       models.PlayerSummary     `json:"summary"`
	ClubRanking   []models.ClubRankingEntry `json:"club_ranking"`
	RecentMatches []models.RecentMatch      `json:"recent_matches"`
}

type dashboardService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	clubRepo       repositories.ClubRepository
	userRepo       repositories.UserRepository
}

func NewDashboardService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	clubRepo repositories.ClubRepository,
	userRepo repositories.UserRepository,
) DashboardService {
	return &dashboardService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		clubRepo:       clubRepo,
		userRepo:       userRepo,
	}
}

// Overview aggregates the three dashboard panels for the user's
// active club. All club history is read once and the panels are
// computed concurrently from the shared snapshot.
func (s *dashboardService) Overview(ctx context.Context, userID int) (*DashboardOverview, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.ActiveClubID == nil {
		return &DashboardOverview{
			ClubRanking:   []models.ClubRankingEntry{},
			RecentMatches: []models.RecentMatch{},
		}, nil
	}
	clubID := *user.ActiveClubID

	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{ClubID: &clubID})
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments for club %d: %w", clubID, err)
	}
	for i := range tournaments {
		matches, matchErr := s.matchRepo.ListByTournament(ctx, tournaments[i].ID)
		if matchErr != nil {
			return nil, fmt.Errorf("failed to load matches for tournament %d: %w", tournaments[i].ID, matchErr)
		}
		tournaments[i].Matches = matches
	}

	overview := &DashboardOverview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		overview.Summary = standings.PlayerSummary(userID, tournaments)
		return nil
	})
	g.Go(func() error {
		memberIDs, memberErr := s.clubRepo.MemberIDs(gctx, clubID)
		if memberErr != nil {
			return fmt.Errorf("failed to load club %d roster: %w", clubID, memberErr)
		}
		members, listErr := s.userRepo.ListByIDs(gctx, memberIDs)
		if listErr != nil {
			return fmt.Errorf("failed to load club %d members: %w", clubID, listErr)
		}
		overview.ClubRanking = standings.ClubRanking(members, tournaments)
		return nil
	})
	g.Go(func() error {
		overview.RecentMatches = standings.RecentMatches(userID, tournaments, recentMatchesLimit)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
