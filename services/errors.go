package services

import "errors"

// Errors shared across services and mapped to HTTP statuses by the
// handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrNameRequired           = errors.New("name is required")
	ErrInsufficientPlayers    = errors.New("at least 4 players are required")
	ErrInvalidScore           = errors.New("team scores must be whole numbers between 0 and 4 summing to exactly 4")
	ErrTournamentCompleted    = errors.New("tournament is completed; reopen it to make changes")
	ErrTournamentNotCompleted = errors.New("tournament is not completed")
	ErrPlayerNotInClub        = errors.New("player is not a member of this club")
	ErrUnsupportedImageType   = errors.New("unsupported image content type")

	// Conflicts
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrClubNameConflict  = errors.New("club name is already in use")
	ErrAlreadyMember     = errors.New("user is already a member of this club")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrClubPasswordInvalid    = errors.New("invalid club password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrCreatorCannotLeave     = errors.New("the club creator cannot leave their own club")
	ErrLastClubMembership     = errors.New("cannot leave your only club")

	// Entity-specific not-found errors
	ErrUserNotFound       = errors.New("user not found")
	ErrClubNotFound       = errors.New("club not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrMemberNotFound     = errors.New("club member not found")
)
