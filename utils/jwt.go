package utils

import (
	"fmt"
	"time"

	"blog-backend/config"
	"blog-backend/models"

	"github.com/golang-jwt/jwt"
)

func GenerateJWT(user models.User, ttl time.Duration) (string, error) {
	jwtSecret := []byte(config.App.JWTSecret)
	if len(jwtSecret) == 0 {
		return "", fmt.Errorf("JWT secret is not configured")
	}

	// pas de claim is_admin: les droits sont relus en base à chaque requête
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func DecodeJWT(tokenString string) (jwt.MapClaims, error) {
	jwtSecret := []byte(config.App.JWTSecret)
	if len(jwtSecret) == 0 {
		return nil, fmt.Errorf("JWT secret is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid or expired token")
}

// UserIDFromClaims extrait l'identité du token (les nombres JSON arrivent en float64)
func UserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["user_id"].(float64)
	if !ok || raw < 1 || raw != float64(uint(raw)) {
		return 0, fmt.Errorf("token has no valid user_id claim")
	}
	return uint(raw), nil
}
