package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nqhuy-dev/task-tracker-api/internal/models"
)

var (
	// ErrNoToken is returned when no token is presented at all.
	ErrNoToken = errors.New("no authentication found")
	// ErrInvalidToken is returned for malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid token")
)

// ExpiredTokenError carries the expiry metadata of a token that was valid
// once. Clients key off code 50014 in the response built from it.
type ExpiredTokenError struct {
	ExpiredAt time.Time
}

func (e *ExpiredTokenError) Error() string {
	return "jwt expired at " + e.ExpiredAt.Format(time.RFC3339)
}

// SessionService issues and verifies the bearer tokens presented on
// authenticated routes.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionService creates a SessionService signing with secret; issued
// tokens expire after ttl.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// IssueToken signs a token for user, prefixed the way clients present it.
func (s *SessionService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return "Bearer " + signed, nil
}

// Decode verifies raw and returns the user id it was issued for. The
// "Bearer " prefix is accepted and stripped. Expired tokens yield an
// *ExpiredTokenError; everything else invalid yields ErrInvalidToken.
func (s *SessionService) Decode(raw string) (string, error) {
	tokenStr := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if tokenStr == "" {
		return "", ErrNoToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && claims.ExpiresAt != nil {
			return "", &ExpiredTokenError{ExpiredAt: claims.ExpiresAt.Time}
		}
		return "", ErrInvalidToken
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// Verify checks raw without exposing the payload, for middleware use.
func (s *SessionService) Verify(raw string) error {
	_, err := s.Decode(raw)
	return err
}
