// controllers/contact.go
package controllers

import (
	"net/http"

	"case-docs-api/services"

	"github.com/gin-gonic/gin"
)

// GetCaseContacts returns the contact roster of a case, main applicant first.
// GET /api/v1/cases/:case_ref/contacts
func GetCaseContacts(c *gin.Context) {
	ref, ok := caseRefParam(c)
	if !ok {
		return
	}

	contacts, err := services.NewRequirementService(nil).ContactsForCase(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"case_ref": ref.String(),
		"contacts": contacts,
		"total":    len(contacts),
	})
}
