package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// ParseActorClaims extracts the actor identity (subject) and role from an
// already-issued token. Issuing and session management happen outside this
// service; only the signature is checked here.
func ParseActorClaims(tokenString, secret string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}

	actorID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if actorID == "" {
		return "", "", errors.New("token has no subject")
	}
	return actorID, role, nil
}
