package onboarding

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxClaimsKey = "onboarding_claims"

func SessionMiddleware(tokens TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])
		claims, err := tokens.Parse(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

// SessionID returns the session bound to the request, or "" when the
// middleware did not run.
func SessionID(c *gin.Context) string {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return ""
	}
	claims, _ := v.(*Claims)
	if claims == nil {
		return ""
	}
	return claims.SessionID
}
