package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenInvalid covers malformed, unsigned and tampered tokens.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents the JWT claims carried by issued tokens. The role
// authority string is the only custom claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed, time-bound identity tokens.
// It is purely functional over the configured secret and safe for
// concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service with the shared signing secret and
// a fixed expiration in milliseconds.
func NewService(secret string, expirationMillis int64) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    time.Duration(expirationMillis) * time.Millisecond,
	}
}

// Issue builds a signed token for the given subject and role authority.
// The jti claim makes every issued token unique, so a re-issued token
// for the same subject never collides with an earlier one.
func (s *Service) Issue(username, authority string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: authority,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ExtractUsername parses the token, verifies the signature and returns
// the subject. An expired token yields ("", nil): expiry means "no
// username available", not a failure. A malformed or tampered token
// yields ErrTokenInvalid. Callers rely on this asymmetry to tell an
// expired token apart from a garbled one.
func (s *Service) ExtractUsername(tokenString string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", nil
		}
		return "", ErrTokenInvalid
	}

	if !parsed.Valid {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}

// IsValid reports whether the token names the given subject and is not
// expired. It never returns an error: anything unparseable is invalid.
func (s *Service) IsValid(tokenString, username string) bool {
	subject, err := s.ExtractUsername(tokenString)
	if err != nil || subject == "" {
		return false
	}
	return subject == username
}
