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
	"golang.org/x/crypto/bcrypt"
)

type ClubService interface {
	Create(ctx context.Context, creatorID int, input CreateClubInput) (*models.Club, error)
	GetByID(ctx context.Context, id int) (*models.Club, error)
	List(ctx context.Context) ([]models.Club, error)
	ListForUser(ctx context.Context, userID int) ([]models.Club, error)
	Join(ctx context.Context, clubID, userID int, password string) error
	Leave(ctx context.Context, clubID, userID int) error
	SetActive(ctx context.Context, clubID, userID int) error
	Update(ctx context.Context, clubID, userID int, input UpdateClubInput) (*models.Club, error)
	RemoveMember(ctx context.Context, clubID, requesterID, memberID int) error
	Members(ctx context.Context, clubID int) ([]models.User, error)
	UploadLogo(ctx context.Context, clubID, userID int, contentType string, body io.Reader) (*models.Club, error)
}

type CreateClubInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Password    string  `json:"password"`
}

type UpdateClubInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Password    *string `json:"password"`
}

type clubService struct {
	clubRepo repositories.ClubRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewClubService(clubRepo repositories.ClubRepository, userRepo repositories.UserRepository, uploader storage.FileUploader) ClubService {
	return &clubService{clubRepo: clubRepo, userRepo: userRepo, uploader: uploader}
}

func (s *clubService) Create(ctx context.Context, creatorID int, input CreateClubInput) (*models.Club, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash club password: %w", err)
	}

	club := &models.Club{
		Name:         input.Name,
		Description:  input.Description,
		CreatedBy:    creatorID,
		PasswordHash: string(hash),
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNameConflict) {
			return nil, ErrClubNameConflict
		}
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	// The creator joins their own club and switches to it, matching
	// the signup flow of the app.
	if err := s.clubRepo.AddMember(ctx, club.ID, creatorID); err != nil {
		return nil, fmt.Errorf("failed to add creator to club %d: %w", club.ID, err)
	}
	if err := s.userRepo.SetActiveClub(ctx, creatorID, &club.ID); err != nil {
		return nil, fmt.Errorf("failed to set active club for user %d: %w", creatorID, err)
	}

	return club, nil
}

func (s *clubService) GetByID(ctx context.Context, id int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	members, err := s.Members(ctx, id)
	if err != nil {
		return nil, err
	}
	club.Members = members
	s.populateLogoURL(club)
	return club, nil
}

func (s *clubService) List(ctx context.Context) ([]models.Club, error) {
	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clubs {
		s.populateLogoURL(&clubs[i])
	}
	return clubs, nil
}

func (s *clubService) ListForUser(ctx context.Context, userID int) ([]models.Club, error) {
	clubs, err := s.clubRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range clubs {
		s.populateLogoURL(&clubs[i])
	}
	return clubs, nil
}

func (s *clubService) Join(ctx context.Context, clubID, userID int, password string) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(club.PasswordHash), []byte(password)); err != nil {
		return ErrClubPasswordInvalid
	}

	if err := s.clubRepo.AddMember(ctx, clubID, userID); err != nil {
		if errors.Is(err, repositories.ErrClubMemberConflict) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("failed to join club %d: %w", clubID, err)
	}
	return nil
}

func (s *clubService) Leave(ctx context.Context, clubID, userID int) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return ErrClubNotFound
		}
		return err
	}
	if club.CreatedBy == userID {
		return ErrCreatorCannotLeave
	}

	memberships, err := s.clubRepo.ListForUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(memberships) <= 1 {
		return ErrLastClubMembership
	}

	if err := s.clubRepo.RemoveMember(ctx, clubID, userID); err != nil {
		if errors.Is(err, repositories.ErrClubMemberNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	// Switch the active club away if it pointed at the one left.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ActiveClubID != nil && *user.ActiveClubID == clubID {
		for _, remaining := range memberships {
			if remaining.ID != clubID {
				return s.userRepo.SetActiveClub(ctx, userID, &remaining.ID)
			}
		}
	}
	return nil
}

func (s *clubService) SetActive(ctx context.Context, clubID, userID int) error {
	isMember, err := s.clubRepo.IsMember(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrMemberNotFound
	}
	return s.userRepo.SetActiveClub(ctx, userID, &clubID)
}

func (s *clubService) Update(ctx context.Context, clubID, userID int, input UpdateClubInput) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	if club.CreatedBy != userID {
		return nil, ErrForbiddenOperation
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		club.Name = *input.Name
	}
	if input.Description != nil {
		club.Description = input.Description
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash club password: %w", hashErr)
		}
		club.PasswordHash = string(hash)
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNameConflict) {
			return nil, ErrClubNameConflict
		}
		return nil, fmt.Errorf("failed to update club %d: %w", clubID, err)
	}
	s.populateLogoURL(club)
	return club, nil
}

func (s *clubService) RemoveMember(ctx context.Context, clubID, requesterID, memberID int) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return ErrClubNotFound
		}
		return err
	}
	if club.CreatedBy != requesterID {
		return ErrForbiddenOperation
	}
	if memberID == club.CreatedBy {
		return ErrForbiddenOperation
	}

	if err := s.clubRepo.RemoveMember(ctx, clubID, memberID); err != nil {
		if errors.Is(err, repositories.ErrClubMemberNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	user, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if user.ActiveClubID != nil && *user.ActiveClubID == clubID {
		return s.userRepo.SetActiveClub(ctx, memberID, nil)
	}
	return nil
}

func (s *clubService) Members(ctx context.Context, clubID int) ([]models.User, error) {
	ids, err := s.clubRepo.MemberIDs(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member ids for club %d: %w", clubID, err)
	}
	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load members for club %d: %w", clubID, err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *clubService) UploadLogo(ctx context.Context, clubID, userID int, contentType string, body io.Reader) (*models.Club, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedImageType
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	if club.CreatedBy != userID {
		return nil, ErrForbiddenOperation
	}

	key := fmt.Sprintf("clubs/%d/logo-%s.%s", clubID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload club logo: %w", err)
	}

	oldKey := club.LogoKey
	if err := s.clubRepo.UpdateLogoKey(ctx, clubID, &key); err != nil {
		return nil, fmt.Errorf("failed to store club logo key: %w", err)
	}
	if oldKey != nil {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	club.LogoKey = &key
	s.populateLogoURL(club)
	return club, nil
}

func (s *clubService) populateLogoURL(club *models.Club) {
	if club.LogoKey != nil {
		url := s.uploader.GetPublicURL(*club.LogoKey)
		club.LogoURL = &url
	}
}
