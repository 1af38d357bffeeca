package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"serendibgo/models"
	"serendibgo/utils"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// JWTAuthMiddleware validates the bearer token and stores the authenticated
// actor in the request context. Validated tokens are cached in Redis by hash
// so repeated requests skip signature verification.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenHash := utils.HashToken(tokenString)

		if actor, ok := cachedActor(c, tokenHash); ok {
			c.Set(actorContextKey, actor)
			c.Next()
			return
		}

		sub, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		actor := models.Actor{ID: sub, Role: role}
		cacheActor(c, tokenHash, actor)
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// RequireStaff gates a route group to staff and admin actors. It must run
// after JWTAuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !actor.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff role required"})
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated actor stored by JWTAuthMiddleware.
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}

func cachedActor(c *gin.Context, tokenHash string) (models.Actor, bool) {
	client := utils.GetAuthCacheClient()
	ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
	defer cancel()

	val, err := client.HGetAll(ctx, utils.AuthCachePrefix+tokenHash).Result()
	if err != nil || len(val) == 0 || val["id"] == "" {
		return models.Actor{}, false
	}
	return models.Actor{ID: val["id"], Role: val["role"]}, true
}

func cacheActor(c *gin.Context, tokenHash string, actor models.Actor) {
	client := utils.GetAuthCacheClient()
	ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
	defer cancel()

	key := utils.AuthCachePrefix + tokenHash
	if err := client.HSet(ctx, key, "id", actor.ID, "role", actor.Role).Err(); err != nil {
		return
	}
	client.Expire(ctx, key, utils.AuthCacheTTL)
}
