package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"pragmaprofe_backend/internals/configs"
	"pragmaprofe_backend/internals/features/users/auth/model"
)

const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateTokenPair emite access + refresh token firmados con los secrets de config.
func GenerateTokenPair(user model.UserModel) (access string, refresh string, err error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"user_name": user.UserName,
		"email":     user.UserEmail,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":  user.UserID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(RefreshTokenTTL).Unix(),
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseRefreshToken valida un refresh token y devuelve el user id (claim "id").
func ParseRefreshToken(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil {
		return "", err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", errors.New("not a refresh token")
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", errors.New("missing id claim")
	}
	return id, nil
}
