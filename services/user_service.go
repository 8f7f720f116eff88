package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Alcalius/padel-pro/models"
	"github.com/Alcalius/padel-pro/repositories"
	"github.com/Alcalius/padel-pro/storage"
	"github.com/google/uuid"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	UploadProfilePicture(ctx context.Context, userID int, contentType string, body io.Reader) (*models.User, error)
}

type UpdateProfileInput struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

type userService struct {
	userRepo repositories.UserRepository
	clubRepo repositories.ClubRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, clubRepo repositories.ClubRepository, uploader storage.FileUploader) UserService {
	return &userService{userRepo: userRepo, clubRepo: clubRepo, uploader: uploader}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	clubs, err := s.clubRepo.ListForUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs for user %d: %w", id, err)
	}
	user.ClubMemberships = make([]int, 0, len(clubs))
	for _, club := range clubs {
		user.ClubMemberships = append(user.ClubMemberships, club.ID)
	}

	s.populateProfilePictureURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		user.Name = *input.Name
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}

	s.populateProfilePictureURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UploadProfilePicture(ctx context.Context, userID int, contentType string, body io.Reader) (*models.User, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedImageType
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("users/%d/avatar-%s.%s", userID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	oldKey := user.ProfilePictureKey
	if err := s.userRepo.UpdateProfilePictureKey(ctx, userID, &key); err != nil {
		return nil, fmt.Errorf("failed to store profile picture key: %w", err)
	}
	if oldKey != nil {
		// Best effort: the new picture is already live.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	user.ProfilePictureKey = &key
	s.populateProfilePictureURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) populateProfilePictureURL(user *models.User) {
	if user.ProfilePictureKey != nil {
		url := s.uploader.GetPublicURL(*user.ProfilePictureKey)
		user.ProfilePictureURL = &url
	}
}
