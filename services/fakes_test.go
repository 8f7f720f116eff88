package services

import (
	"context"
	"io"
	"sort"

	"github.com/Alcalius/padel-pro/models"
	"github.com/Alcalius/padel-pro/repositories"
	"github.com/Alcalius/padel-pro/storage"
)

// In-memory repository fakes for service tests. They implement the
// happy-path store semantics including the sentinel errors the
// services translate.

type fakeUserRepo struct {
	nextID int
	users  map[int]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ListByIDs(ctx context.Context, ids []int) ([]models.User, error) {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) SetActiveClub(ctx context.Context, userID int, clubID *int) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.ActiveClubID = clubID
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) UpdateProfilePictureKey(ctx context.Context, userID int, key *string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.ProfilePictureKey = key
	r.users[userID] = u
	return nil
}

type fakeClubRepo struct {
	nextID  int
	clubs   map[int]models.Club
	members map[int][]int
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{nextID: 1, clubs: make(map[int]models.Club), members: make(map[int][]int)}
}

func (r *fakeClubRepo) Create(ctx context.Context, c *models.Club) error {
	for _, existing := range r.clubs {
		if existing.Name == c.Name {
			return repositories.ErrClubNameConflict
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.clubs[c.ID] = *c
	return nil
}

func (r *fakeClubRepo) GetByID(ctx context.Context, id int) (*models.Club, error) {
	c, ok := r.clubs[id]
	if !ok {
		return nil, repositories.ErrClubNotFound
	}
	copied := c
	return &copied, nil
}

func (r *fakeClubRepo) List(ctx context.Context) ([]models.Club, error) {
	out := make([]models.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClubRepo) ListForUser(ctx context.Context, userID int) ([]models.Club, error) {
	out := make([]models.Club, 0)
	for clubID, userIDs := range r.members {
		for _, id := range userIDs {
			if id == userID {
				out = append(out, r.clubs[clubID])
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClubRepo) Update(ctx context.Context, c *models.Club) error {
	if _, ok := r.clubs[c.ID]; !ok {
		return repositories.ErrClubNotFound
	}
	r.clubs[c.ID] = *c
	return nil
}

func (r *fakeClubRepo) UpdateLogoKey(ctx context.Context, clubID int, logoKey *string) error {
	c, ok := r.clubs[clubID]
	if !ok {
		return repositories.ErrClubNotFound
	}
	c.LogoKey = logoKey
	r.clubs[clubID] = c
	return nil
}

func (r *fakeClubRepo) AddMember(ctx context.Context, clubID, userID int) error {
	for _, id := range r.members[clubID] {
		if id == userID {
			return repositories.ErrClubMemberConflict
		}
	}
	r.members[clubID] = append(r.members[clubID], userID)
	return nil
}

func (r *fakeClubRepo) RemoveMember(ctx context.Context, clubID, userID int) error {
	ids := r.members[clubID]
	for i, id := range ids {
		if id == userID {
			r.members[clubID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return repositories.ErrClubMemberNotFound
}

func (r *fakeClubRepo) IsMember(ctx context.Context, clubID, userID int) (bool, error) {
	for _, id := range r.members[clubID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClubRepo) MemberIDs(ctx context.Context, clubID int) ([]int, error) {
	return append([]int(nil), r.members[clubID]...), nil
}

type fakeTournamentRepo struct {
	nextID      int
	tournaments map[int]models.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{nextID: 1, tournaments: make(map[int]models.Tournament)}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	t.ID = r.nextID
	r.nextID++
	stored := *t
	stored.Matches = nil
	r.tournaments[t.ID] = stored
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := t
	return &copied, nil
}

func (r *fakeTournamentRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0)
	for _, t := range r.tournaments {
		if filter.ClubID != nil && t.ClubID != *filter.ClubID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	r.tournaments[id] = t
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeMatchRepo struct {
	nextID  int
	matches map[int]models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1, matches: make(map[int]models.Match)}
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	m.ID = r.nextID
	r.nextID++
	r.matches[m.ID] = *m
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := m
	return &copied, nil
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	out := make([]models.Match, 0)
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMatchRepo) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, id int, scoreTeam1, scoreTeam2 int, status models.MatchStatus) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.ScoreTeam1 = &scoreTeam1
	m.ScoreTeam2 = &scoreTeam2
	m.Status = status
	r.matches[id] = m
	return nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type fakeUploader struct {
	uploads map[string]string
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string]string)}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.uploads[key] = contentType
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
