package routes

import (
	"case-docs-api/controllers"
	"case-docs-api/middleware"
	"case-docs-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Case Document Tracking API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Document requirements
			requirements := protected.Group("/requirements")
			{
				requirements.POST("", controllers.CreateRequirement)
				requirements.GET("", controllers.ListRequirements)
				requirements.GET("/:id", controllers.GetRequirement)
				requirements.PATCH("/:id", controllers.UpdateRequirement)
				requirements.DELETE("/:id", controllers.DeleteRequirement)

				requirements.PUT("/:id/status", controllers.UpdateRequirementStatus)
				requirements.PUT("/:id/provenance", controllers.UpdateRequirementProvenance)
				requirements.GET("/:id/history", controllers.GetRequirementHistory)
			}

			// Case-scoped views (case_ref accepts both schemas, e.g. "12" or "legacy-7")
			cases := protected.Group("/cases/:case_ref")
			{
				cases.GET("/contacts", controllers.GetCaseContacts)
				cases.GET("/contacts/:contact_id/requirements", controllers.GetContactRequirements)
				cases.GET("/contacts/:contact_id/completion", controllers.GetContactCompletion)
				cases.GET("/completion", controllers.GetCaseCompletion)
				cases.GET("/history", controllers.GetCaseHistory)

				// Bulk removal is destructive across contacts; admins only
				cases.DELETE("/requirements", middleware.RequireRole(models.RoleAdmin), controllers.BulkRemoveRequirementsByName)
			}

			// Catalog
			protected.GET("/document-templates", controllers.GetDocumentTemplates)
			protected.GET("/document-categories", controllers.GetDocumentCategories)
		}

	}

	// 404 catch-all
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})
}
