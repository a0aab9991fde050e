package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims carries the identity inside a signed token
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the signed identity tokens the provider
// hands out on successful authentication
type TokenService struct {
	secretKey []byte
	expiry    time.Duration
}

// NewTokenService creates a TokenService signing with secretKey
func NewTokenService(secretKey string, expiry time.Duration) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		expiry:    expiry,
	}
}

// Issue creates a signed token for email
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Validate checks a token and returns the email it was issued for
func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}
