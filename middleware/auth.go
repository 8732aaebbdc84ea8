package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/handson-platform/handson-backend/config"
	"github.com/handson-platform/handson-backend/utils"
)

// AuthMiddleware verifies the session token issued by the hosted auth
// provider and loads the caller identity into the request context.
//
// The token is read from the Authorization header (Bearer scheme) or,
// for browser clients, from the "token" cookie set at login.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		if utils.RedisClient != nil {
			if revoked, err := utils.IsTokenBlacklisted(c.Request.Context(), tokenStr); err == nil && revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session has been revoked"})
				return
			}
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
			return
		}

		// The provider puts the user uuid in the standard subject claim.
		userID, _ := claims["sub"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token missing subject"})
			return
		}

		email, _ := claims["email"].(string)
		name := ""
		if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
			if n, ok := meta["name"].(string); ok {
				name = n
			} else if n, ok := meta["full_name"].(string); ok {
				name = n
			}
		}

		c.Set("user_id", userID)
		c.Set("user_email", email)
		c.Set("user_name", name)
		c.Set("token", tokenStr)
		c.Set("claims", claims)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
