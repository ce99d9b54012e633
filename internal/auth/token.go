package auth

import (
	"errors"
	"fmt"
	"time"

	"vetclinic/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation failure kinds. Expired is the only retryable one (the
// caller can log in again); the other two mean the token was never ours.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

const DefaultTokenTTL = 24 * time.Hour

// TokenService issues and validates signed identity tokens. Stateless: the
// secret is fixed at process start and nothing is stored server-side, so a
// token cannot be revoked before its expiry.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenService(secret string) TokenService {
	return TokenService{Secret: []byte(secret), TTL: DefaultTokenTTL}
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a signed token carrying the identity's subject id and role.
func (s TokenService) Issue(userID int64, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	})
	return token.SignedString(s.Secret)
}

// Validate checks the signature before inspecting any field, then expiry.
// The returned role is the canonical form regardless of how the token
// spelled it.
func (s TokenService) Validate(tokenString string) (domain.Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.Secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Identity{}, ErrTokenSignature
		default:
			return domain.Identity{}, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return domain.Identity{}, ErrTokenSignature
	}

	var userID int64
	if _, err := fmt.Sscanf(c.Subject, "%d", &userID); err != nil || userID <= 0 {
		return domain.Identity{}, ErrTokenMalformed
	}
	role, ok := domain.Roles.Canonical(c.Role)
	if !ok {
		return domain.Identity{}, ErrTokenMalformed
	}

	return domain.Identity{UserID: userID, Role: role}, nil
}

func (s TokenService) ttl() time.Duration {
	if s.TTL != 0 {
		return s.TTL
	}
	return DefaultTokenTTL
}
