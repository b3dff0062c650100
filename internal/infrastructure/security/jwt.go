// Package security provides JWT token utilities
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateOpsToken creates a JWT for an authenticated ops console client.
func GenerateOpsToken(jwtSecret string, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"type": "ops_auth",
		"iat":  time.Now().UTC().Unix(),
		"exp":  time.Now().UTC().Add(lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateOpsToken checks that a token is a valid, unexpired ops token.
func ValidateOpsToken(tokenString, jwtSecret string) error {
	claims, err := ValidateJWT(tokenString, jwtSecret)
	if err != nil {
		return err
	}
	if claims["type"] != "ops_auth" {
		return errors.New("not an ops token")
	}
	return nil
}
