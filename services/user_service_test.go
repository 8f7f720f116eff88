package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alcalius/padel-pro/models"
)

type userFixture struct {
	service  UserService
	userRepo *fakeUserRepo
	clubRepo *fakeClubRepo
	uploader *fakeUploader
}

func newUserFixture() *userFixture {
	f := &userFixture{
		userRepo: newFakeUserRepo(),
		clubRepo: newFakeClubRepo(),
		uploader: newFakeUploader(),
	}
	f.service = NewUserService(f.userRepo, f.clubRepo, f.uploader)
	return f
}

func TestUserGetByIDExpandsMemberships(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	user := &models.User{Name: "Ana", Email: "ana@test.dev", PasswordHash: "hash"}
	require.NoError(t, f.userRepo.Create(ctx, user))

	club := &models.Club{Name: "Padel Norte", CreatedBy: user.ID, PasswordHash: "x"}
	require.NoError(t, f.clubRepo.Create(ctx, club))
	require.NoError(t, f.clubRepo.AddMember(ctx, club.ID, user.ID))

	loaded, err := f.service.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{club.ID}, loaded.ClubMemberships)
	assert.Empty(t, loaded.PasswordHash)
}

func TestUserGetByIDNotFoundMapped(t *testing.T) {
	f := newUserFixture()

	_, err := f.service.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdateProfile(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	user := &models.User{Name: "Ana", Email: "ana@test.dev", PasswordHash: "hash", Avatar: "🎾"}
	require.NoError(t, f.userRepo.Create(ctx, user))

	empty := ""
	_, err := f.service.UpdateProfile(ctx, user.ID, UpdateProfileInput{Name: &empty})
	assert.ErrorIs(t, err, ErrNameRequired)

	newName := "Ana Maria"
	newAvatar := "👩"
	updated, err := f.service.UpdateProfile(ctx, user.ID, UpdateProfileInput{Name: &newName, Avatar: &newAvatar})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newAvatar, updated.Avatar)
}

func TestUserUploadProfilePictureReplacesOld(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	user := &models.User{Name: "Ana", Email: "ana@test.dev", PasswordHash: "hash"}
	require.NoError(t, f.userRepo.Create(ctx, user))

	_, err := f.service.UploadProfilePicture(ctx, user.ID, "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedImageType)

	first, err := f.service.UploadProfilePicture(ctx, user.ID, "image/jpeg", strings.NewReader("img1"))
	require.NoError(t, err)
	require.NotNil(t, first.ProfilePictureKey)
	firstKey := *first.ProfilePictureKey
	assert.Contains(t, firstKey, "users/")
	require.NotNil(t, first.ProfilePictureURL)

	second, err := f.service.UploadProfilePicture(ctx, user.ID, "image/png", strings.NewReader("img2"))
	require.NoError(t, err)
	require.NotNil(t, second.ProfilePictureKey)
	assert.NotEqual(t, firstKey, *second.ProfilePictureKey)
	assert.Contains(t, f.uploader.deleted, firstKey, "the replaced picture is cleaned up")
}
