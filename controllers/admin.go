package controllers

import (
	"net/http"
	"strings"
	"time"
	"welfare-assistance-api/config"
	"welfare-assistance-api/models"
	"welfare-assistance-api/services"

	"github.com/gin-gonic/gin"
)

// GetAdminRequests returns requests for the admin queues, optionally
// filtered by status, newest first.
func GetAdminRequests(c *gin.Context) {
	requests, err := services.NewLifecycleService(config.DB).ListByStatus(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// UpdateRequestStatus applies the admin decision on a pending request.
func UpdateRequestStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		RequestID       int    `json:"requestId" binding:"required"`
		Status          string `json:"status" binding:"required"`
		RejectionReason string `json:"rejectionReason"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := services.NewLifecycleService(config.DB).
		SetStatus(req.RequestID, req.Status, req.RejectionReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.ClearAnalyticsCache()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"request": request,
	})
}

// GetAnalytics returns the cached dashboard counters.
func GetAnalytics(c *gin.Context) {
	analytics, err := services.NewAnalyticsService(config.DB).Overview()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": analytics})
}

// GetAcceptedDonors returns the newest 100 pledges with donor and
// request details for the admin "accepted by donor" view.
func GetAcceptedDonors(c *gin.Context) {
	pledges, err := services.NewPledgeService(config.DB).ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"acceptedDonors": pledges})
}

// GetDonors lists donor accounts for the admin donor management tab.
func GetDonors(c *gin.Context) {
	var donors []models.Account
	if err := config.DB.Where("role = ?", models.RoleDonor).
		Order("create_at DESC").Find(&donors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"donors": donors})
}

// UpdateDonorStatus moves a donor between PENDING, ACTIVE and REJECTED.
func UpdateDonorStatus(c *gin.Context) {
	type DonorStatusRequest struct {
		DonorID int    `json:"donorId" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}

	var req DonorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := strings.ToUpper(req.Status)
	if status != models.DonorPending && status != models.DonorActive && status != models.DonorRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be PENDING, ACTIVE or REJECTED"})
		return
	}

	var donor models.Account
	if err := config.DB.Where("account_id = ? AND role = ?", req.DonorID, models.RoleDonor).
		First(&donor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
		return
	}

	now := time.Now()
	donor.DonorStatus = &status
	donor.UpdateAt = &now

	if err := config.DB.Save(&donor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donor"})
		return
	}

	services.NewNotifier(config.DB).NotifyDonorStatus(&donor)
	services.ClearAnalyticsCache()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"donor":   donor,
	})
}

// GetCompletedSurveys returns finished surveys for the admin review tab.
func GetCompletedSurveys(c *gin.Context) {
	surveys, err := services.NewSurveyService(config.DB).ListCompleted()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	type completedSurveyView struct {
		models.Survey
		SurveyStatusNormalized string `json:"survey_status_normalized"`
	}

	views := make([]completedSurveyView, 0, len(surveys))
	for _, s := range surveys {
		views = append(views, completedSurveyView{
			Survey:                 s,
			SurveyStatusNormalized: s.NormalizedStatus(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"surveys": views})
}
