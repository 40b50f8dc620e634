package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mybudget/internal/domain"
)

// statusTable maps each workflow error kind to its transport status.
// Order matters only for readability; kinds are disjoint.
var statusTable = []struct {
	kind   error
	status int
}{
	{domain.ErrExpenseNotFound, http.StatusNotFound},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrRegistration, http.StatusUnauthorized},
	{domain.ErrExpenseValidation, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrUserNotFound, http.StatusUnauthorized},
	{domain.ErrTokenCreation, http.StatusInternalServerError},
}

// respondError writes the error with its mapped status. Unclassified
// failures surface as a generic 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	for _, entry := range statusTable {
		if errors.Is(err, entry.kind) {
			c.JSON(entry.status, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error, please try again"})
}
