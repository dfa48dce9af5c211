package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
	"github.com/iqurastudy/quizapi/internal/repository"
)

const (
	defaultRefreshTokenTTL = 7 * 24 * time.Hour

	authHeaderName = "Authorization"
	bearerScheme   = "Bearer "
)

type Config struct {
	// Codec settings, see CodecConfig
	Codec CodecConfig

	// Refresh token lifetime
	// If not set then default is used
	RefreshTTL time.Duration
}

// Service issues token pairs, rotates refresh tokens and
// extracts identity claims from inbound requests.
// It is the only seam through which other services learn the acting user.
type Service struct {
	codec      *Codec
	refreshTTL time.Duration
	userRepo   repository.UserRepo
}

func NewService(cfg Config, userRepo repository.UserRepo) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("user repo must not be nil")
	}

	codec, err := NewCodec(cfg.Codec)
	if err != nil {
		return nil, err
	}

	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = defaultRefreshTokenTTL
	}

	return &Service{
		codec:      codec,
		refreshTTL: cfg.RefreshTTL,
		userRepo:   userRepo,
	}, nil
}

// IssuePair signs an access token and stores a fresh refresh token on the user row.
// The previous refresh token is overwritten, a user holds at most one.
func (s *Service) IssuePair(ctx context.Context, user models.User) (models.TokenPair, error) {
	var pair models.TokenPair

	access, accessExpiresAt, err := s.codec.SignAccess(user.ID, user.Email)
	if err != nil {
		return pair, err
	}

	// Generate random refresh token 16 bytes length
	b := make([]byte, 16)
	_, err = rand.Read(b)
	if err != nil {
		return pair, fmt.Errorf("error while generating refresh token. Err: %w", err)
	}
	refresh := hex.EncodeToString(b)
	refreshExpiresAt := time.Now().Truncate(time.Second).Add(s.refreshTTL)

	_, err = s.userRepo.SetRefreshToken(ctx, user.ID, refresh, refreshExpiresAt)
	if err != nil {
		return pair, fmt.Errorf("error while saving refresh token. Err: %w", err)
	}

	return models.TokenPair{
		Access:  models.IssuedToken{Value: access, ExpiresAt: accessExpiresAt},
		Refresh: models.IssuedToken{Value: refresh, ExpiresAt: refreshExpiresAt},
	}, nil
}

// Rotate exchanges a live refresh token for a fresh pair.
// The presented value is single use: issuing the new pair overwrites it,
// so a second exchange with the same value fails with ErrRefreshTokenNotFound.
func (s *Service) Rotate(ctx context.Context, refresh string) (models.TokenPair, error) {
	var pair models.TokenPair

	user, err := s.userRepo.GetUserByRefreshToken(ctx, refresh)
	if err != nil {
		return pair, fmt.Errorf("error while looking up refresh token. Err: %w", err)
	}

	if user.RefreshTokenExpiresAt == nil || user.RefreshTokenExpiresAt.Before(time.Now()) {
		return pair, fmt.Errorf("error while rotating refresh token. Err: %w", apperrors.ErrRefreshTokenExpired)
	}

	return s.IssuePair(ctx, user)
}

// UserIDFromRequest extracts the acting user id from the request's bearer token
// It never mutates anything and returns classified errors only
func (s *Service) UserIDFromRequest(r *http.Request) (uuid.UUID, error) {
	claims, err := s.claimsFromRequest(r)
	if err != nil {
		return uuid.Nil, err
	}

	return claims.UserID, nil
}

// EmailFromRequest extracts the email claim from the request's bearer token.
// A valid token without the claim is ErrClaimMissing, distinct from auth failures.
func (s *Service) EmailFromRequest(r *http.Request) (string, error) {
	claims, err := s.claimsFromRequest(r)
	if err != nil {
		return "", err
	}

	if claims.Email == "" {
		return "", apperrors.ErrClaimMissing
	}

	return claims.Email, nil
}

// UserFromRequest authenticates the request and loads the acting user record
func (s *Service) UserFromRequest(ctx context.Context, r *http.Request) (models.User, error) {
	claims, err := s.claimsFromRequest(r)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return models.User{}, fmt.Errorf("error while loading token user. Err: %w", err)
	}

	return user, nil
}

func (s *Service) claimsFromRequest(r *http.Request) (AccessTokenClaims, error) {
	header := r.Header.Get(authHeaderName)
	if header == "" || !strings.HasPrefix(header, bearerScheme) {
		return AccessTokenClaims{}, apperrors.ErrNoAuthToken
	}

	return s.codec.ParseAccess(strings.TrimPrefix(header, bearerScheme))
}
