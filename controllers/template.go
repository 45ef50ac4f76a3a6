// controllers/template.go
package controllers

import (
	"net/http"

	"case-docs-api/models"
	"case-docs-api/services"

	"github.com/gin-gonic/gin"
)

// GetDocumentTemplates returns the read-only template catalog.
// GET /api/v1/document-templates
func GetDocumentTemplates(c *gin.Context) {
	templates, err := services.NewTemplateService(nil).All()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"templates": templates,
		"total":     len(templates),
	})
}

// GetDocumentCategories returns the fixed category set plus the protected
// default document names, so callers can grey-out what bulk removal refuses.
// GET /api/v1/document-categories
func GetDocumentCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"categories":      models.ValidCategories(),
		"statuses":        models.ValidStatuses(),
		"protected_names": models.ProtectedDocumentNames(),
	})
}
