package routes

import (
	"welfare-assistance-api/controllers"
	"welfare-assistance-api/middleware"
	"welfare-assistance-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/auth/login", controllers.Login)
			public.POST("/auth/signup", controllers.Signup)

			// Donor-facing pool of approved, unpledged requests
			public.GET("/requests/approved", controllers.GetApprovedRequests)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Welfare Assistance API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Account
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications (all authenticated roles)
			protected.GET("/notifications", controllers.GetNotifications)
			protected.POST("/notifications/:id/read", controllers.MarkNotificationRead)
			protected.POST("/notifications/read-all", controllers.MarkAllNotificationsRead)

			// Applicant requests
			requests := protected.Group("/requests")
			{
				requests.POST("/submit", middleware.RequireRole(models.RoleUser), controllers.SubmitRequest)
				requests.GET("", middleware.RequireRole(models.RoleUser), controllers.GetMyRequests)
				requests.GET("/:id", controllers.GetRequest)
			}

			// Admin review and management
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/requests", controllers.GetAdminRequests)
				admin.POST("/update-status", controllers.UpdateRequestStatus)
				admin.GET("/analytics", controllers.GetAnalytics)
				admin.GET("/accepted-donors", controllers.GetAcceptedDonors)
				admin.GET("/donors", controllers.GetDonors)
				admin.POST("/donors", controllers.UpdateDonorStatus)
				admin.GET("/completed-surveys", controllers.GetCompletedSurveys)
			}

			// Donor pledges
			donor := protected.Group("/donor")
			donor.Use(middleware.RequireRole(models.RoleDonor))
			{
				donor.POST("/accept-request", controllers.AcceptRequest)
				donor.GET("/accepted-requests", controllers.GetAcceptedRequests)
				donor.GET("/stats", controllers.GetDonorStats)
			}

			// Survey workflow
			survey := protected.Group("/survey")
			{
				// Forwarding is an admin action, reachable from both the
				// approved list and the pledge-accepted list
				survey.POST("/assign", middleware.RequireRole(models.RoleAdmin), controllers.AssignSurvey)

				// Officer queue and report submission
				survey.GET("/assigned", middleware.RequireRole(models.RoleSurveyOfficer), controllers.GetAssignedSurveys)
				survey.POST("", middleware.RequireRole(models.RoleSurveyOfficer), controllers.SubmitSurveyReport)
				survey.POST("/attachments", middleware.RequireRole(models.RoleSurveyOfficer), controllers.UploadSurveyAttachment)
			}
		}
	}
}
