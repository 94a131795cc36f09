package middleware

import (
	"net/http"
	"strings"

	"blog-backend/utils"

	"github.com/gin-gonic/gin"
)

// ActorKey est la clé du contexte gin qui porte l'identité de l'appelant (uint)
const ActorKey = "user_id"

func extractActorID(c *gin.Context) (uint, bool) {
	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
		return 0, false
	}

	authHeader = strings.Trim(authHeader, "\"' ")

	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		authHeader = "Bearer " + authHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format, expected: Bearer <token>"})
		return 0, false
	}

	tokenString := strings.Trim(parts[1], "\"' ")

	claims, err := utils.DecodeJWT(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
		return 0, false
	}

	userID, err := utils.UserIDFromClaims(claims)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
		return 0, false
	}

	return userID, true
}

// JWTAuth exige un token valide
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := extractActorID(c)
		if !ok {
			return
		}

		c.Set(ActorKey, userID)
		c.Next()
	}
}

// OptionalAuth laisse passer les appels anonymes, mais un token présent doit être valide
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		userID, ok := extractActorID(c)
		if !ok {
			return
		}

		c.Set(ActorKey, userID)
		c.Next()
	}
}

// ActorID renvoie l'identité posée par JWTAuth/OptionalAuth
func ActorID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
