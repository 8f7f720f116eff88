package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alcalius/padel-pro/models"
)

type clubFixture struct {
	service  ClubService
	clubRepo *fakeClubRepo
	userRepo *fakeUserRepo
	uploader *fakeUploader
}

func newClubFixture() *clubFixture {
	f := &clubFixture{
		clubRepo: newFakeClubRepo(),
		userRepo: newFakeUserRepo(),
		uploader: newFakeUploader(),
	}
	f.service = NewClubService(f.clubRepo, f.userRepo, f.uploader)
	return f
}

func (f *clubFixture) seedUser(t *testing.T, name string) int {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@test.dev", PasswordHash: "x"}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user.ID
}

func TestClubCreateMakesCreatorActiveMember(t *testing.T) {
	f := newClubFixture()
	ctx := context.Background()
	creatorID := f.seedUser(t, "ana")

	club, err := f.service.Create(ctx, creatorID, CreateClubInput{Name: "Padel Norte", Password: "secret123"})
	require.NoError(t, err)
	assert.NotZero(t, club.ID)

	isMember, err := f.clubRepo.IsMember(ctx, club.ID, creatorID)
	require.NoError(t, err)
	assert.True(t, isMember)

	user, err := f.userRepo.GetByID(ctx, creatorID)
	require.NoError(t, err)
	require.NotNil(t, user.ActiveClubID)
	assert.Equal(t, club.ID, *user.ActiveClubID)
}

func TestClubJoinChecksPassword(t *testing.T) {
	f := newClubFixture()
	ctx := context.Background()
	creatorID := f.seedUser(t, "ana")
	joinerID := f.seedUser(t, "bea")

	club, err := f.service.Create(ctx, creatorID, CreateClubInput{Name: "Padel Norte", Password: "secret123"})
	require.NoError(t, err)

	err = f.service.Join(ctx, club.ID, joinerID, "wrong")
	assert.ErrorIs(t, err, ErrClubPasswordInvalid)

	require.NoError(t, f.service.Join(ctx, club.ID, joinerID, "secret123"))

	err = f.service.Join(ctx, club.ID, joinerID, "secret123")
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestClubLeaveGuards(t *testing.T) {
	f := newClubFixture()
	ctx := context.Background()
	creatorID := f.seedUser(t, "ana")
	memberID := f.seedUser(t, "bea")

	club, err := f.service.Create(ctx, creatorID, CreateClubInput{Name: "Padel Norte", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, f.service.Join(ctx, club.ID, memberID, "secret123"))

	err = f.service.Leave(ctx, club.ID, creatorID)
	assert.ErrorIs(t, err, ErrCreatorCannotLeave)

	// A member's only club cannot be left.
	err = f.service.Leave(ctx, club.ID, memberID)
	assert.ErrorIs(t, err, ErrLastClubMembership)

	second, err := f.service.Create(ctx, memberID, CreateClubInput{Name: "Padel Sur", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, f.service.Leave(ctx, club.ID, memberID))
	isMember, err := f.clubRepo.IsMember(ctx, club.ID, memberID)
	require.NoError(t, err)
	assert.False(t, isMember)

	// The active club still points at a club they belong to.
	user, err := f.userRepo.GetByID(ctx, memberID)
	require.NoError(t, err)
	require.NotNil(t, user.ActiveClubID)
	assert.Equal(t, second.ID, *user.ActiveClubID)
}

func TestClubUpdateCreatorOnly(t *testing.T) {
	f := newClubFixture()
	ctx := context.Background()
	creatorID := f.seedUser(t, "ana")
	otherID := f.seedUser(t, "bea")

	club, err := f.service.Create(ctx, creatorID, CreateClubInput{Name: "Padel Norte", Password: "secret123"})
	require.NoError(t, err)

	newName := "Padel Norte II"
	_, err = f.service.Update(ctx, club.ID, otherID, UpdateClubInput{Name: &newName})
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	updated, err := f.service.Update(ctx, club.ID, creatorID, UpdateClubInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
}

func TestClubRemoveMember(t *testing.T) {
	f := newClubFixture()
	ctx := context.Background()
	creatorID := f.seedUser(t, "ana")
	memberID := f.seedUser(t, "bea")

	club, err := f.service.Create(ctx, creatorID, CreateClubInput{Name: "Padel Norte", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, f.service.Join(ctx, club.ID, memberID, "secret123"))

	err = f.service.RemoveMember(ctx, club.ID, memberID, creatorID)
	assert.ErrorIs(t, err, ErrForbiddenOperation, "only the creator can remove members")

	err = f.service.RemoveMember(ctx, club.ID, creatorID, creatorID)
	assert.ErrorIs(t, err, ErrForbiddenOperation, "the creator cannot be removed")

	require.NoError(t, f.service.RemoveMember(ctx, club.ID, creatorID, memberID))
	isMember, err := f.clubRepo.IsMember(ctx, club.ID, memberID)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestClubUploadLogo(t *testing.T) {
	f := newClubFixture()
	ctx := context.Background()
	creatorID := f.seedUser(t, "ana")

	club, err := f.service.Create(ctx, creatorID, CreateClubInput{Name: "Padel Norte", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.service.UploadLogo(ctx, club.ID, creatorID, "text/plain", strings.NewReader("nope"))
	assert.ErrorIs(t, err, ErrUnsupportedImageType)

	updated, err := f.service.UploadLogo(ctx, club.ID, creatorID, "image/png", strings.NewReader("fake image"))
	require.NoError(t, err)
	require.NotNil(t, updated.LogoKey)
	assert.Contains(t, *updated.LogoKey, "clubs/")
	require.NotNil(t, updated.LogoURL)
	assert.Contains(t, *updated.LogoURL, "https://cdn.test/")
	assert.Len(t, f.uploader.uploads, 1)
}
