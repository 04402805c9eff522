package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"taxi_orders/internal/middleware"
	"taxi_orders/internal/permissions"
	"taxi_orders/internal/validation"
)

// requirePrincipal pulls the authenticated caller set by the JWT
// middleware. API groups are wrapped in RequireAuth, so a miss means a
// broken pipeline rather than a missing token.
func requirePrincipal(c *gin.Context) (permissions.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return p, ok
}

func respondValidation(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// isUniqueViolation reports a postgres unique-constraint error (23505).
// Validation pre-checks uniqueness, so this only catches races.
func isUniqueViolation(err error) bool {
	if pgErr, ok := err.(*pq.Error); ok {
		return pgErr.Code == "23505"
	}
	return false
}
