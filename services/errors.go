package services

import "errors"

// Shared errors used across services and the HTTP mapping.
var (
	// Not found
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrUserNotFound   = errors.New("user not found")

	// Validation and business rules
	ErrInvalidScore        = errors.New("both scores are required and must be non-negative integers")
	ErrInvalidPlayerStats  = errors.New("player stat deltas must reference a player and be non-negative")
	ErrPlayerNameRequired  = errors.New("player name is required")
	ErrPlayerTeamRequired  = errors.New("player team is required")
	ErrCrestContentInvalid = errors.New("unsupported crest image content type")

	// Conflicts
	ErrUsernameTaken            = errors.New("username is already in use")
	ErrEmailTaken               = errors.New("email address is already in use")
	ErrPhase2AlreadyInitialized = errors.New("phase 2 has already been initialized")

	// Authentication and authorization
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrResultSubmitForbidden = errors.New("only administrators can submit match results")
	ErrAdminOnly             = errors.New("operation requires the admin role")

	// Infrastructure
	ErrCrestStorageUnavailable = errors.New("crest storage is not configured")
)
