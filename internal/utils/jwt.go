package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/vik9386/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims authorize individual requests. Short-lived, signed with the
// access secret.
type AccessClaims struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Type     string `json:"type"` // "access"
	jwt.RegisteredClaims
}

// RefreshClaims mint new access tokens. Longer-lived, signed with the
// refresh secret, and carry nothing beyond the user identity.
type RefreshClaims struct {
	ID   uint   `json:"id"`
	Type string `json:"type"` // "refresh"
	jwt.RegisteredClaims
}

func accessSecret() []byte {
	return []byte(config.Get().JWT.AccessSecret)
}

func refreshSecret() []byte {
	return []byte(config.Get().JWT.RefreshSecret)
}

func GenerateAccessToken(id uint, username, email, fullName string, duration time.Duration) (string, error) {
	claims := AccessClaims{
		ID:       id,
		Username: username,
		Email:    email,
		FullName: fullName,
		Type:     "access",
		RegisteredClaims: jwt.RegisteredClaims{
			// unique jti: expiry alone has second granularity, which would
			// make two tokens minted in the same second identical
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "vidtube-server",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(accessSecret())
}

func GenerateRefreshToken(id uint, duration time.Duration) (string, error) {
	claims := RefreshClaims{
		ID:   id,
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			// the stored slot is compare-and-swapped on rotation, so every
			// mint must produce a distinct token string
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "vidtube-server",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(refreshSecret())
}

func ParseAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return accessSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		if claims.Type != "access" {
			return nil, errors.New("invalid token type")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func ParseRefreshToken(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return refreshSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*RefreshClaims); ok && token.Valid {
		if claims.Type != "refresh" {
			return nil, errors.New("invalid token type")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// AccessTokenTTL returns the configured access token lifetime.
func AccessTokenTTL() time.Duration {
	return time.Hour * time.Duration(config.Get().JWT.AccessExpiryHours)
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func RefreshTokenTTL() time.Duration {
	return time.Hour * time.Duration(config.Get().JWT.RefreshExpiryHours)
}
