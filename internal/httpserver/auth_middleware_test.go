package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mybudget/internal/domain"
	"mybudget/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	user *model.User
	err  error
}

func (s *stubResolver) ResolveUser(_ context.Context, _ string) (*model.User, error) {
	return s.user, s.err
}

func newGatedRouter(resolver UserResolver) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(resolver))
	r.GET("/whoami", func(c *gin.Context) {
		value, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": value.(*model.User).Email})
	})
	return r
}

func TestGateNoHeaderProceedsUnauthenticated(t *testing.T) {
	r := newGatedRouter(&stubResolver{err: domain.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}

func TestGateValidTokenAttachesIdentity(t *testing.T) {
	r := newGatedRouter(&stubResolver{user: &model.User{ID: 1, Email: "ana@example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"ana@example.com"}`, w.Body.String())
}

func TestGateBadTokenShortCircuits(t *testing.T) {
	r := newGatedRouter(&stubResolver{err: domain.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, w.Body.String())
}

func TestGateMalformedSchemeProceedsUnauthenticated(t *testing.T) {
	// A non-bearer Authorization header is treated as absent.
	r := newGatedRouter(&stubResolver{err: domain.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}
