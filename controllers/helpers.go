package controllers

import (
	"errors"
	"log"
	"net/http"
	"welfare-assistance-api/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service errors to HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request is not in a valid state for this action"})
	case errors.Is(err, services.ErrDuplicatePledge):
		c.JSON(http.StatusConflict, gin.H{"error": "Request has already been accepted by a donor"})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func currentAccountID(c *gin.Context) int {
	accountID, _ := c.Get("accountID")
	return accountID.(int)
}
