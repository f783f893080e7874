package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskdeck/internal/workspace"
)

// accessToken resolves the acting user from a bearer token. Token issuing is
// the identity provider's job; this middleware only validates the HMAC
// signature and pulls the userId claim into the request context.
func (s *Server) accessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "authorization header is missing")
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSecret, nil
		})
		if err != nil {
			abortUnauthorized(c, "token is expired or invalid")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abortUnauthorized(c, "invalid token claims")
			return
		}
		userID, ok := claims["userId"].(string)
		if !ok || userID == "" {
			abortUnauthorized(c, "missing userId claim")
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"ok":      false,
		"error":   workspace.KindNotAuthorized,
		"message": message,
	})
}
