package controllers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"welfare-assistance-api/config"
	"welfare-assistance-api/services"
	"welfare-assistance-api/utils"

	"github.com/gin-gonic/gin"
)

// saveUpload stores one uploaded file under the upload root and returns
// its public URL. A nil header returns an empty URL without error.
func saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}

	root, err := utils.EnsureUploadDir()
	if err != nil {
		return "", err
	}

	storedName := utils.StoredFilename(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(root, storedName)); err != nil {
		return "", err
	}

	return utils.PublicURL(storedName), nil
}

// SubmitRequest handles the applicant's multipart submission form.
func SubmitRequest(c *gin.Context) {
	accountID := currentAccountID(c)

	familyMembers, _ := strconv.Atoi(c.PostForm("family_members"))
	monthlyIncome, errIncome := strconv.Atoi(c.PostForm("monthly_income"))
	if errIncome != nil {
		monthlyIncome = -1
	}

	input := services.SubmitInput{
		AccountID:      accountID,
		FullName:       utils.SanitizeInput(c.PostForm("full_name")),
		FatherName:     utils.SanitizeInput(c.PostForm("father_name")),
		CnicNumber:     utils.SanitizeInput(c.PostForm("cnic_number")),
		PhoneNumber:    utils.SanitizeInput(c.PostForm("phone_number")),
		FamilyMembers:  familyMembers,
		MonthlyIncome:  monthlyIncome,
		HomeType:       utils.SanitizeInput(c.PostForm("home_type")),
		MaritalStatus:  utils.SanitizeInput(c.PostForm("marital_status")),
		AssistanceType: utils.SanitizeInput(c.PostForm("assistance_type")),
		Description:    utils.SanitizeInput(c.PostForm("situation_description")),
	}

	if raw := c.PostForm("amount"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			input.Amount = &amount
		}
	}

	cnicFront, err := c.FormFile("cnic_front")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CNIC Front image is required"})
		return
	}

	frontURL, err := saveUpload(c, cnicFront)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}
	input.CnicFront = frontURL

	if back, err := c.FormFile("cnic_back"); err == nil {
		backURL, err := saveUpload(c, back)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}
		input.CnicBack = &backURL
	}

	if doc, err := c.FormFile("document"); err == nil {
		docURL, err := saveUpload(c, doc)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}
		input.Document = &docURL
	}

	request, err := services.NewLifecycleService(config.DB).Submit(input)
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

// GetMyRequests returns the applicant's own requests, newest first.
func GetMyRequests(c *gin.Context) {
	accountID := currentAccountID(c)

	requests, err := services.NewLifecycleService(config.DB).ListByAccount(accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// GetRequest returns a single request. Applicants may only see their own.
func GetRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	request, err := services.NewLifecycleService(config.DB).Get(requestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	role, _ := c.Get("role")
	if role.(string) != "admin" && request.AccountID != currentAccountID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// GetApprovedRequests is the donor-facing pool: approved requests that
// no donor has pledged yet.
func GetApprovedRequests(c *gin.Context) {
	requests, err := services.NewPledgeService(config.DB).AvailableRequests()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}
