package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/platemate-ai/backend/internal/types"
)

const serviceTokenTTL = 24 * time.Hour

// TokenService issues and validates the service tokens that protect the
// ingestion routes. There are no user accounts; tokens name systems.
type TokenService struct {
	jwtSecret string
}

// NewTokenService creates a new TokenService instance
func NewTokenService(jwtSecret string) *TokenService {
	return &TokenService{jwtSecret: jwtSecret}
}

// IssueToken signs a token for the named service
func (s *TokenService) IssueToken(serviceName string) (string, error) {
	if serviceName == "" {
		return "", errors.New("service name is required")
	}

	claims := types.ServiceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(serviceTokenTTL)),
		},
		Service: serviceName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a service token
func (s *TokenService) ValidateToken(tokenString string) (*types.ServiceClaims, error) {
	claims := &types.ServiceClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Service == "" {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
