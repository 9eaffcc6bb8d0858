package jwtmw

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the token signing key.
const EnvKeyJWTSecret = "JWT_SECRET"

// Generator defines the interface for auth token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given user id.
	GenerateToken(userID uint) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret []byte
}

// NewGenerator creates a new JWT generator with the provided secret.
func NewGenerator(secret string) Generator {
	return &generator{secret: []byte(secret)}
}

// GenerateToken creates a signed HS256 token carrying the user id.
// The payload is a nested {"user":{"id":...}} object; no expiry claim is
// set and tokens are verified by signature alone.
func (g *generator) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user": map[string]any{
			"id": userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
