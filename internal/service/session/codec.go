package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iqurastudy/quizapi/internal/apperrors"
)

const (
	defaultSigningMethod  = "HS256"
	defaultAccessTokenTTL = 15 * time.Minute

	// Symmetric keys shorter than this are trivially brute forced
	minSecretKeyLen = 32
)

// AccessTokenClaims are the claims baked into every access token
// Email may be empty when the user record has no email
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email,omitempty"`
}

type CodecConfig struct {
	// Secret key to sign access tokens
	// Required to be set and at least 32 bytes long
	SecretKey string

	// Issuer and audience embedded into and required from every token
	Issuer   string
	Audience string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set then default is used
	Alg string

	// Access token lifetime
	// If not set then default is used
	AccessTTL time.Duration
}

// Codec signs and verifies access tokens
// It is a pure function of its config and carries no state
type Codec struct {
	key       string
	issuer    string
	audience  string
	alg       jwt.SigningMethod
	accessTTL time.Duration
}

func NewCodec(cfg CodecConfig) (*Codec, error) {
	if len(cfg.SecretKey) < minSecretKeyLen {
		return nil, fmt.Errorf("secret key must be at least %d bytes long", minSecretKeyLen)
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaultAccessTokenTTL
	}

	alg := jwt.GetSigningMethod(cfg.Alg)
	if alg == nil {
		return nil, fmt.Errorf("unknown signing method %q", cfg.Alg)
	}

	return &Codec{
		key:       cfg.SecretKey,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		alg:       alg,
		accessTTL: cfg.AccessTTL,
	}, nil
}

func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

// SignAccess issues a signed access token for the user
func (c *Codec) SignAccess(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error) {
	now := time.Now().Truncate(time.Second)
	expiresAt = now.Add(c.accessTTL)

	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Email:  email,
	}

	token, err = jwt.NewWithClaims(c.alg, claims).SignedString([]byte(c.key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return token, expiresAt, nil
}

// ParseAccess verifies the token and returns its claims
// Failures are classified into the apperrors token sub-kinds, nothing else leaks
func (c *Codec) ParseAccess(access string) (AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.alg.Alg()}),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	if c.audience != "" {
		opts = append(opts, jwt.WithAudience(c.audience))
	}

	_, err := jwt.ParseWithClaims(
		access,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(c.key), nil },
		opts...,
	)

	switch {
	case err == nil:
		return *claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return AccessTokenClaims{}, apperrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return AccessTokenClaims{}, apperrors.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		// Signed by somebody else's key infrastructure
		return AccessTokenClaims{}, apperrors.ErrTokenSignatureInvalid
	default:
		return AccessTokenClaims{}, apperrors.ErrTokenMalformed
	}
}
