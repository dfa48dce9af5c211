package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
	"github.com/iqurastudy/quizapi/internal/repository"
	"github.com/iqurastudy/quizapi/internal/service/session"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to use during registration or login
	// If not set then default bcrypt hasher is used
	Hasher PasswordHasher
}

// AuthService registers and logs in users, issuing session token pairs
type AuthService struct {
	hasher   PasswordHasher
	session  *session.Service
	userRepo repository.UserRepo
}

func NewService(cfg Config, sessionService *session.Service, userRepo repository.UserRepo) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if sessionService == nil || userRepo == nil {
		return nil, errors.New("session service and user repo must not be nil")
	}

	return &AuthService{
		hasher:   hasher,
		session:  sessionService,
		userRepo: userRepo,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, username string, email string, password string) (models.TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, username, email, hash)
	if err != nil {
		return models.TokenPair{}, err
	}

	return s.session.IssuePair(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (models.TokenPair, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		// Do not reveal whether the user exists
		return models.TokenPair{}, apperrors.ErrUserNotFound
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.TokenPair{}, apperrors.ErrUserNotFound
	}

	return s.session.IssuePair(ctx, user)
}

// Refresh exchanges a refresh token for a fresh pair, single use
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	return s.session.Rotate(ctx, refresh)
}
