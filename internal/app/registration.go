package app

import (
	"context"
	"errors"
	"time"

	"bidboard/internal/domain/shared"
	"bidboard/internal/ports/inbound"
	"bidboard/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength is the minimum accepted password length
const minPasswordLength = 8

// RegistrationService implements the account use cases
type RegistrationService struct {
	userRepo outbound.UserRepository
	logger   zerolog.Logger
}

type RegistrationServiceParams struct {
	UserRepo outbound.UserRepository
	Logger   zerolog.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(params RegistrationServiceParams) *RegistrationService {
	return &RegistrationService{
		userRepo: params.UserRepo,
		logger:   params.Logger.With().Str("component", "registration_service").Logger(),
	}
}

// Register creates a new account with a bcrypt-hashed password. A
// username collision surfaces as shared.ErrDuplicateUsername.
func (service *RegistrationService) Register(ctx context.Context, req inbound.RegisterRequest) (*shared.User, error) {
	service.logger.Info().Str("username", req.Username).Msg("Attempting to register user")

	if req.Username == "" {
		return nil, shared.ErrUsernameRequired
	}
	if len(req.Password) < minPasswordLength {
		return nil, shared.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &shared.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := service.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrDuplicateUsername) {
			service.logger.Warn().Str("username", req.Username).Msg("Username already taken")
		} else {
			service.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		}
		return nil, err
	}

	service.logger.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("User registered successfully")
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (service *RegistrationService) Authenticate(ctx context.Context, username, password string) (*shared.User, error) {
	user, err := service.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	return user, nil
}
