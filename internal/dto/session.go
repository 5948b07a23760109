package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims defines the custom claims of a session token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionResponse is returned when a new session is opened.
// @Description Session handle to send as a Bearer token
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis"`
}
