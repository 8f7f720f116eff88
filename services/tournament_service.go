package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Alcalius/padel-pro/models"
	"github.com/Alcalius/padel-pro/repositories"
	"github.com/Alcalius/padel-pro/scheduling"
	"github.com/Alcalius/padel-pro/standings"
)

type TournamentService interface {
	Create(ctx context.Context, creatorID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListByClub(ctx context.Context, clubID int, status *models.TournamentStatus) ([]models.Tournament, error)
	Delete(ctx context.Context, tournamentID, userID int) error
	Complete(ctx context.Context, tournamentID, userID int) error
	Reopen(ctx context.Context, tournamentID, userID int) error
	AddMatch(ctx context.Context, tournamentID int) (*models.Match, error)
	SubmitScore(ctx context.Context, tournamentID, matchID, scoreTeam1, scoreTeam2 int) (*models.Match, error)
	DeleteMatch(ctx context.Context, tournamentID, matchID int) error
	Ranking(ctx context.Context, tournamentID int) ([]standings.RankingEntry, error)
}

type CreateTournamentInput struct {
	Name         string   `json:"name"`
	ClubID       int      `json:"club_id"`
	Players      []int    `json:"players"`
	GuestPlayers []string `json:"guest_players"`
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	clubRepo       repositories.ClubRepository
	userRepo       repositories.UserRepository
	generator      *scheduling.Generator
	hub            *scheduling.Hub
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	clubRepo repositories.ClubRepository,
	userRepo repositories.UserRepository,
	generator *scheduling.Generator,
	hub *scheduling.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		clubRepo:       clubRepo,
		userRepo:       userRepo,
		generator:      generator,
		hub:            hub,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, creatorID int, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if len(input.Players)+len(input.GuestPlayers) < 4 {
		return nil, ErrInsufficientPlayers
	}

	memberIDs, err := s.clubRepo.MemberIDs(ctx, input.ClubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load club %d roster: %w", input.ClubID, err)
	}
	members := make(map[int]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	for _, playerID := range input.Players {
		if !members[playerID] {
			return nil, fmt.Errorf("%w: user %d", ErrPlayerNotInClub, playerID)
		}
	}

	tournament := &models.Tournament{
		Name:         input.Name,
		ClubID:       input.ClubID,
		CreatedBy:    creatorID,
		Players:      input.Players,
		GuestPlayers: input.GuestPlayers,
		Status:       models.TournamentStatusActive,
	}

	initial := s.generator.InitialMatches(tournament.AllPlayerRefs())

	// Tournament and seed matches land atomically.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentInvalidClub) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	for i := range initial {
		initial[i].TournamentID = tournament.ID
		if err := s.matchRepo.Create(ctx, tx, &initial[i]); err != nil {
			return nil, fmt.Errorf("failed to create initial match: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tournament creation: %w", err)
	}

	tournament.Matches = initial
	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.Int("club_id", tournament.ClubID),
		slog.Int("initial_matches", len(initial)))
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for tournament %d: %w", id, err)
	}
	tournament.Matches = matches
	return tournament, nil
}

func (s *tournamentService) ListByClub(ctx context.Context, clubID int, status *models.TournamentStatus) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		ClubID: &clubID,
		Status: status,
	})
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		matches, matchErr := s.matchRepo.ListByTournament(ctx, tournaments[i].ID)
		if matchErr != nil {
			return nil, fmt.Errorf("failed to load matches for tournament %d: %w", tournaments[i].ID, matchErr)
		}
		tournaments[i].Matches = matches
	}
	return tournaments, nil
}

func (s *tournamentService) Delete(ctx context.Context, tournamentID, userID int) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if tournament.CreatedBy != userID {
		return ErrForbiddenOperation
	}
	return s.tournamentRepo.Delete(ctx, tournamentID)
}

func (s *tournamentService) Complete(ctx context.Context, tournamentID, userID int) error {
	return s.transitionStatus(ctx, tournamentID, userID,
		models.TournamentStatusActive, models.TournamentStatusCompleted)
}

// Reopen moves a completed tournament back to active; the transition
// is deliberately reversible.
func (s *tournamentService) Reopen(ctx context.Context, tournamentID, userID int) error {
	return s.transitionStatus(ctx, tournamentID, userID,
		models.TournamentStatusCompleted, models.TournamentStatusActive)
}

func (s *tournamentService) transitionStatus(ctx context.Context, tournamentID, userID int, from, to models.TournamentStatus) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if tournament.CreatedBy != userID {
		return ErrForbiddenOperation
	}
	if tournament.Status != from {
		if from == models.TournamentStatusCompleted {
			return ErrTournamentNotCompleted
		}
		return ErrTournamentCompleted
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, tournamentID, to); err != nil {
		return err
	}
	s.broadcast(tournamentID, scheduling.EventTournamentStatus, map[string]interface{}{
		"tournament_id": tournamentID,
		"status":        to,
	})
	return nil
}

// AddMatch generates one balanced match for the tournament. The
// tournament row is locked for the duration of the transaction so two
// concurrent requests cannot both generate from the same history.
func (s *tournamentService) AddMatch(ctx context.Context, tournamentID int) (*models.Match, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tournament, err := s.tournamentRepo.GetByIDForUpdate(ctx, tx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status == models.TournamentStatusCompleted {
		return nil, ErrTournamentCompleted
	}

	players := tournament.AllPlayerRefs()
	if len(players) < 4 {
		return nil, ErrInsufficientPlayers
	}

	existing, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for tournament %d: %w", tournamentID, err)
	}

	match := s.generator.BalancedMatch(players, existing)
	match.TournamentID = tournamentID
	if err := s.matchRepo.Create(ctx, tx, &match); err != nil {
		return nil, fmt.Errorf("failed to store generated match: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match creation: %w", err)
	}

	s.broadcast(tournamentID, scheduling.EventMatchCreated, match)
	return &match, nil
}

// SubmitScore validates and records a result. Both scores must be
// whole numbers in [0, 4] summing to exactly 4; a rejected submission
// leaves the match untouched.
func (s *tournamentService) SubmitScore(ctx context.Context, tournamentID, matchID, scoreTeam1, scoreTeam2 int) (*models.Match, error) {
	if scoreTeam1 < 0 || scoreTeam2 < 0 ||
		scoreTeam1 > models.MatchScoreTotal || scoreTeam2 > models.MatchScoreTotal ||
		scoreTeam1+scoreTeam2 != models.MatchScoreTotal {
		return nil, ErrInvalidScore
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tournament, err := s.tournamentRepo.GetByIDForUpdate(ctx, tx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status == models.TournamentStatusCompleted {
		return nil, ErrTournamentCompleted
	}

	match, err := s.matchRepo.GetByID(ctx, tx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.TournamentID != tournamentID {
		return nil, ErrMatchNotFound
	}

	if err := s.matchRepo.UpdateScore(ctx, tx, matchID, scoreTeam1, scoreTeam2, models.MatchStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to record score for match %d: %w", matchID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit score submission: %w", err)
	}

	match.ScoreTeam1 = &scoreTeam1
	match.ScoreTeam2 = &scoreTeam2
	match.Status = models.MatchStatusCompleted

	s.broadcast(tournamentID, scheduling.EventScoreRecorded, match)
	return match, nil
}

func (s *tournamentService) DeleteMatch(ctx context.Context, tournamentID, matchID int) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if tournament.Status == models.TournamentStatusCompleted {
		return ErrTournamentCompleted
	}

	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	if match.TournamentID != tournamentID {
		return ErrMatchNotFound
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return err
	}
	s.broadcast(tournamentID, scheduling.EventMatchDeleted, map[string]int{"match_id": matchID})
	return nil
}

// Ranking computes the standings table, resolving registered player
// names against the user registry. Stale player references are
// skipped by the fold rather than failing the whole view.
func (s *tournamentService) Ranking(ctx context.Context, tournamentID int) ([]standings.RankingEntry, error) {
	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	entries := standings.ComputeRanking(tournament)

	users, err := s.userRepo.ListByIDs(ctx, tournament.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player names: %w", err)
	}
	byID := make(map[int]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range entries {
		if !entries[i].IsGuest {
			entries[i].Name = standings.ResolvePlayer(entries[i].Player, tournament, byID).Name
		}
	}
	return entries, nil
}

func (s *tournamentService) broadcast(tournamentID int, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(tournamentRoom(tournamentID), scheduling.Message{
		Type:    eventType,
		Payload: payload,
	})
}

// tournamentRoom names the websocket room for a tournament.
func tournamentRoom(tournamentID int) string {
	return "tournament_" + strconv.Itoa(tournamentID)
}
