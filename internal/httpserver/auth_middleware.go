package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"mybudget/internal/model"
	"mybudget/internal/token"
)

// UserResolver turns a bearer token into an account identity.
type UserResolver interface {
	ResolveUser(ctx context.Context, tokenStr string) (*model.User, error)
}

// AuthMiddleware establishes the request identity from the Authorization
// header. Requests without a bearer token proceed unauthenticated; each
// endpoint decides whether an identity is required. A token that fails to
// resolve short-circuits the request.
func AuthMiddleware(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := token.ExtractToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		user, err := resolver.ResolveUser(c.Request.Context(), tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
