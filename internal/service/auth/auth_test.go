package auth

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/repository/postgres"
	"github.com/iqurastudy/quizapi/internal/service/session"
	"github.com/iqurastudy/quizapi/internal/testutil"
)

const testSecretKey = "test-secret-key-longer-than-32-bytes"

func Test_Auth(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Begin new db transaction and create new AuthService
	// Rollback transaction when test stops
	withTx := func(dbpool *pgxpool.Pool, refreshTTL time.Duration, t *testing.T, fn func(s *AuthService)) {
		testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
			userRepo := &postgres.UserRepo{DB: tx}

			sessionService, err := session.NewService(
				session.Config{
					Codec:      session.CodecConfig{SecretKey: testSecretKey},
					RefreshTTL: refreshTTL,
				},
				userRepo,
			)
			require.NoError(t, err, "session service should be created without errors")

			s, err := NewService(Config{}, sessionService, userRepo)
			require.NoError(t, err, "auth service should be created without errors")

			fn(s)
		})
	}

	t.Run("new auth service defaults", func(t *testing.T) {
		s, err := NewService(Config{}, nil, nil)
		require.Error(t, err, "nil session service or user repo should be rejected")
		require.Nil(t, s)
	})

	t.Run("Register", func(t *testing.T) {
		t.Run("new user ok", func(t *testing.T) {
			withTx(pg.Pool, 24*time.Hour, t, func(s *AuthService) {
				pair, err := s.Register(t.Context(), "student", "student@example.com", "pwd")

				require.NoError(t, err, "registering new user should be ok")
				require.NotEmpty(t, pair.Access.Value, "access token should not be empty")
				require.NotEmpty(t, pair.Refresh.Value, "refresh token should not be empty")
			})
		})

		t.Run("fail if user exists", func(t *testing.T) {
			withTx(pg.Pool, 24*time.Hour, t, func(s *AuthService) {
				_, err := s.Register(t.Context(), "student", "student@example.com", "pwd")
				require.NoError(t, err, "no error should happen if user not exists")

				_, err = s.Register(t.Context(), "student", "another@example.com", "other-pwd")

				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
			})
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("existing user ok", func(t *testing.T) {
			withTx(pg.Pool, 24*time.Hour, t, func(s *AuthService) {
				_, err := s.Register(t.Context(), "student", "student@example.com", "pwd")
				require.NoError(t, err)

				pair, err := s.Login(t.Context(), "student", "pwd")

				require.NoError(t, err)
				require.NotEmpty(t, pair.Access.Value, "access token should not be empty")
				require.NotEmpty(t, pair.Refresh.Value, "refresh token should not be empty")
			})
		})

		tests := []struct {
			name        string
			login       string
			password    string
			expectedErr error
		}{
			{
				name:        "login fail if wrong password",
				login:       "student",
				password:    "wrong",
				expectedErr: apperrors.ErrUserNotFound,
			},
			{
				name:        "login fail if user not exists",
				login:       "not-existed-user",
				password:    "password",
				expectedErr: apperrors.ErrUserNotFound,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				withTx(pg.Pool, 24*time.Hour, t, func(s *AuthService) {
					_, err := s.Register(t.Context(), "student", "student@example.com", "pwd")
					require.NoError(t, err)

					_, err = s.Login(t.Context(), tt.login, tt.password)

					require.Error(t, err)
					require.ErrorIs(t, err, tt.expectedErr)
				})
			})
		}
	})

	t.Run("Refresh", func(t *testing.T) {
		t.Run("refresh once ok", func(t *testing.T) {
			withTx(pg.Pool, 24*time.Hour, t, func(s *AuthService) {
				// Register user and get initial token pair
				initialPair, err := s.Register(t.Context(), "student", "student@example.com", "pwd")
				require.NoError(t, err)

				// Use refresh token to get new token pair
				newPair, err := s.Refresh(t.Context(), initialPair.Refresh.Value)

				require.NoError(t, err)
				require.NotEqual(t, initialPair.Access.Value, newPair.Access.Value, "new access token should be different")
				require.NotEqual(t, initialPair.Refresh.Value, newPair.Refresh.Value, "new refresh token should be different")
			})
		})

		t.Run("fail if used once", func(t *testing.T) {
			withTx(pg.Pool, 24*time.Hour, t, func(s *AuthService) {
				initialPair, err := s.Register(t.Context(), "student", "student@example.com", "pwd")
				require.NoError(t, err)

				// Use refresh token once, should work
				_, err = s.Refresh(t.Context(), initialPair.Refresh.Value)
				require.NoError(t, err)

				// Try to use same refresh token again, should fail
				_, err = s.Refresh(t.Context(), initialPair.Refresh.Value)
				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound, "rotated out token should be unknown")
			})
		})

		t.Run("fail if expired", func(t *testing.T) {
			withTx(pg.Pool, 1*time.Second, t, func(s *AuthService) {
				initialPair, err := s.Register(t.Context(), "student", "student@example.com", "pwd")
				require.NoError(t, err)

				// Move time forward to make sure refresh token is expired
				time.Sleep(time.Second)

				_, err = s.Refresh(t.Context(), initialPair.Refresh.Value)
				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired, "should return error if token expired")
			})
		})
	})
}
