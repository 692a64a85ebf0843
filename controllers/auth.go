package controllers

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
	"welfare-assistance-api/config"
	"welfare-assistance-api/middleware"
	"welfare-assistance-api/models"
	"welfare-assistance-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	CNIC     string `json:"cnic"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	User    models.Account `json:"user"`
	Message string         `json:"message"`
}

// Login authenticates by email or CNIC. The error message never says
// whether the account or the password was wrong.
func Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var account models.Account
	var err error
	switch {
	case req.Email != "":
		err = config.DB.Where("email = ?", utils.SanitizeInput(req.Email)).First(&account).Error
	case req.CNIC != "":
		cnic := utils.NormalizeCNIC(req.CNIC)
		if cnic == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		err = config.DB.Where("cnic = ?", cnic).First(&account).Error
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or CNIC is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Donors must be approved by the admin before they can log in
	if account.Role == models.RoleDonor && !account.IsActiveDonor() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Your account is pending approval by admin"})
		return
	}

	if !CheckPasswordHash(req.Password, account.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := generateToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		User:    account,
		Message: "Login successful",
	})
}

type SignupRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	CNIC             string `json:"cnic"`
	Role             string `json:"role"`
	Address          string `json:"address"`
	City             string `json:"city"`
	Phone            string `json:"phone"`
	OrganizationName string `json:"organization_name"`
}

// Signup registers a user, donor or survey officer account. Admin
// accounts are provisioned out of band (cmd/seed-admin).
func Signup(c *gin.Context) {
	var req SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role == models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin signup not allowed"})
		return
	}

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	role := models.RoleUser
	switch req.Role {
	case models.RoleDonor:
		role = models.RoleDonor
	case "survey", models.RoleSurveyOfficer:
		role = models.RoleSurveyOfficer
	}

	var existing models.Account
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Account already exists"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	now := time.Now()
	account := models.Account{
		Name:     utils.SanitizeInput(req.Name),
		Email:    utils.SanitizeInput(req.Email),
		Password: hashed,
		Role:     role,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if cnic := utils.NormalizeCNIC(req.CNIC); cnic != "" {
		account.CNIC = &cnic
	}
	if req.Phone != "" {
		phone := utils.SanitizeInput(req.Phone)
		account.Phone = &phone
	}
	if req.Address != "" {
		address := utils.SanitizeInput(req.Address)
		account.Address = &address
	}
	if req.City != "" {
		city := utils.SanitizeInput(req.City)
		account.City = &city
	}
	if role == models.RoleDonor {
		status := models.DonorPending
		account.DonorStatus = &status
		if req.OrganizationName != "" {
			org := utils.SanitizeInput(req.OrganizationName)
			account.OrganizationName = &org
		}
	}

	if err := config.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    account,
	})
}

// GetProfile returns current account profile
func GetProfile(c *gin.Context) {
	accountID := currentAccountID(c)

	var account models.Account
	if err := config.DB.Where("account_id = ?", accountID).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": account,
	})
}

// ChangePassword handles password change
func ChangePassword(c *gin.Context) {
	type PasswordChangeRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID := currentAccountID(c)

	var account models.Account
	if err := config.DB.Where("account_id = ?", accountID).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	if !CheckPasswordHash(req.CurrentPassword, account.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	now := time.Now()
	account.Password = hashed
	account.UpdateAt = &now

	if err := config.DB.Save(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// generateToken creates JWT token
func generateToken(account models.Account) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24 // default 24 hours
	}

	claims := middleware.Claims{
		AccountID: account.AccountID,
		Email:     account.Email,
		Role:      strings.ToLower(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
