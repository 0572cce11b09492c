package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are JWT claims scoping a token to one browsing session
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// SessionCreateResponse is returned when a session is opened through the API
type SessionCreateResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}
