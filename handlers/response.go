package handlers

import (
	"errors"
	"net/http"

	"riddlevault/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the wire error taxonomy. Every
// error body carries a machine-readable code next to the human-readable
// message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCollectionNotFound),
		errors.Is(err, services.ErrRiddleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": err.Error()})
	case errors.Is(err, services.ErrCollectionForbidden):
		c.JSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION", "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": "User not authenticated"})
}

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION", "error": message})
}
