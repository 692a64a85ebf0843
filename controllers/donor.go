package controllers

import (
	"net/http"
	"welfare-assistance-api/config"
	"welfare-assistance-api/services"

	"github.com/gin-gonic/gin"
)

// AcceptRequest records the donor's pledge for an approved request.
func AcceptRequest(c *gin.Context) {
	type AcceptRequestBody struct {
		RequestID int     `json:"requestId" binding:"required"`
		Amount    float64 `json:"amount" binding:"required,gt=0"`
	}

	var req AcceptRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donorID := currentAccountID(c)

	pledge, err := services.NewPledgeService(config.DB).AcceptRequest(donorID, req.RequestID, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.ClearAnalyticsCache()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pledge":  pledge,
	})
}

// GetAcceptedRequests returns the donor's own pledges with requests.
func GetAcceptedRequests(c *gin.Context) {
	donorID := currentAccountID(c)

	pledges, err := services.NewPledgeService(config.DB).ListByDonor(donorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pledges": pledges,
		"total":   len(pledges),
	})
}

// GetDonorStats returns totals for the donor dashboard cards.
func GetDonorStats(c *gin.Context) {
	donorID := currentAccountID(c)

	stats, err := services.NewPledgeService(config.DB).Stats(donorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
