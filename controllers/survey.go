package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"welfare-assistance-api/config"
	"welfare-assistance-api/services"

	"github.com/gin-gonic/gin"
)

// AssignSurvey forwards an approved request to the survey workflow.
// A null officerId leaves the survey in the unassigned pool.
func AssignSurvey(c *gin.Context) {
	type AssignBody struct {
		ApplicationID int  `json:"applicationId" binding:"required"`
		OfficerID     *int `json:"officerId"`
	}

	var req AssignBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey, err := services.NewSurveyService(config.DB).Assign(req.ApplicationID, req.OfficerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.ClearAnalyticsCache()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"survey":  survey,
	})
}

// SubmitSurveyReport records the officer's findings and completes the survey.
func SubmitSurveyReport(c *gin.Context) {
	type ReportBody struct {
		SurveyID       int                        `json:"surveyId" binding:"required"`
		Recommendation string                     `json:"recommendation"`
		Report         string                     `json:"report"`
		Attachments    []services.AttachmentInput `json:"attachments"`
	}

	var req ReportBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	officerID := currentAccountID(c)

	survey, err := services.NewSurveyService(config.DB).
		SubmitReport(req.SurveyID, officerID, req.Report, req.Recommendation, req.Attachments)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.ClearAnalyticsCache()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"survey":  survey,
	})
}

// GetAssignedSurveys returns the officer queue: own surveys plus the
// unassigned pool.
func GetAssignedSurveys(c *gin.Context) {
	officerID := currentAccountID(c)

	surveys, err := services.NewSurveyService(config.DB).ListByOfficer(officerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"surveys": surveys,
		"total":   len(surveys),
	})
}

// UploadSurveyAttachment stores a field evidence file and returns its
// URL so the officer can reference it in the report submission.
func UploadSurveyAttachment(c *gin.Context) {
	surveyID, err := strconv.Atoi(c.PostForm("survey_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid survey id"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	maxSize := int64(10 * 1024 * 1024)
	if file.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	allowedTypes := map[string]bool{
		".pdf":  true,
		".png":  true,
		".jpg":  true,
		".jpeg": true,
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedTypes[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	url, err := saveUpload(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	officerID := currentAccountID(c)

	attachment, err := services.NewSurveyService(config.DB).
		AddAttachment(surveyID, officerID, file.Filename, url)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"attachment": attachment,
	})
}
