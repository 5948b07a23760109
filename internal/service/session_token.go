package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notes-assistant/internal/domain"
	"notes-assistant/internal/dto"
	"notes-assistant/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenIssuer = "notes-assistant"

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionTokenService issues and validates the bearer tokens that identify a user session.
type SessionTokenService interface {
	Issue(ctx context.Context) (*dto.SessionResponse, error)
	Validate(ctx context.Context, tokenString string) (string, error)
}

type sessionTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokenService(secret string, ttl time.Duration) (SessionTokenService, error) {
	if secret == "" {
		return nil, errors.New("session secret is not configured")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return &sessionTokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue opens a new session with a fresh ULID and returns its signed token.
func (s *sessionTokenService) Issue(ctx context.Context) (*dto.SessionResponse, error) {
	sessionID := util.NewULID()
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := dto.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    sessionTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign session token", err)
	}
	return &dto.SessionResponse{SessionID: sessionID, Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate returns the session ID carried by a valid, unexpired token.
func (s *sessionTokenService) Validate(ctx context.Context, tokenString string) (string, error) {
	claims := &dto.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidSessionToken
	}
	if !util.IsValidULID(claims.SessionID) {
		return "", fmt.Errorf("%w: malformed session id", ErrInvalidSessionToken)
	}
	return claims.SessionID, nil
}
