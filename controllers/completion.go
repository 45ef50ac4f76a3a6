// controllers/completion.go
package controllers

import (
	"net/http"
	"strconv"

	"case-docs-api/services"

	"github.com/gin-gonic/gin"
)

// GetCaseCompletion computes the case-level completion metrics on demand.
// GET /api/v1/cases/:case_ref/completion
func GetCaseCompletion(c *gin.Context) {
	ref, ok := caseRefParam(c)
	if !ok {
		return
	}

	stats, err := services.NewCompletionService(nil).PerCase(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"case_ref":   ref.String(),
		"completion": stats,
	})
}

// GetContactCompletion computes one contact's completion metrics on demand.
// GET /api/v1/cases/:case_ref/contacts/:contact_id/completion
func GetContactCompletion(c *gin.Context) {
	ref, ok := caseRefParam(c)
	if !ok {
		return
	}
	contactID, err := strconv.Atoi(c.Param("contact_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact id"})
		return
	}

	stats, svcErr := services.NewCompletionService(nil).PerContact(c.Request.Context(), ref, contactID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"case_ref":   ref.String(),
		"contact_id": contactID,
		"completion": stats,
	})
}
