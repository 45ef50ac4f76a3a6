// controllers/requirement.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"case-docs-api/models"
	"case-docs-api/services"

	"github.com/gin-gonic/gin"
)

// requirementWithRef tags a requirement row with its resolved canonical case
// reference for callers that mix both schemas in one listing.
type requirementWithRef struct {
	models.DocumentRequirement
	CaseRefTag string `json:"case_ref"`
}

func tagRequirements(rows []models.DocumentRequirement) []requirementWithRef {
	tagged := make([]requirementWithRef, 0, len(rows))
	for _, row := range rows {
		tagged = append(tagged, requirementWithRef{
			DocumentRequirement: row,
			CaseRefTag:          row.CaseRef().String(),
		})
	}
	return tagged
}

// CreateRequirement creates a document requirement for a case or contact.
// POST /api/v1/requirements
func CreateRequirement(c *gin.Context) {
	var req models.CreateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requirement, err := services.NewRequirementService(nil).Create(c.Request.Context(), req, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Document requirement created successfully",
		"requirement": requirement,
	})
}

// ListRequirements lists requirements across cases of both schemas.
// GET /api/v1/requirements?case_refs=12,legacy-7
func ListRequirements(c *gin.Context) {
	rawRefs := strings.Split(c.Query("case_refs"), ",")
	var refs []models.CaseRef
	for _, raw := range rawRefs {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		ref, err := models.ResolveCaseRef(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		refs = append(refs, ref)
	}
	if len(refs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "case_refs query parameter is required"})
		return
	}

	result, err := services.NewRequirementService(nil).List(c.Request.Context(), refs)
	if err != nil {
		respondError(c, err)
		return
	}

	// A failed schema branch annotates the response instead of failing it.
	failures := make([]gin.H, 0, len(result.Partials))
	for _, partial := range result.Partials {
		failures = append(failures, gin.H{
			"schema": partial.Schema,
			"error":  partial.Error(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"requirements":   tagRequirements(result.Requirements),
		"summary":        models.SummarizeRequirements(result.Requirements),
		"total":          len(result.Requirements),
		"partial":        len(failures) > 0,
		"failed_schemas": failures,
	})
}

// GetRequirement fetches a single requirement.
// GET /api/v1/requirements/:id
func GetRequirement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requirement id"})
		return
	}

	requirement, svcErr := services.NewRequirementService(nil).Get(c.Request.Context(), id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"requirement": requirement,
	})
}

// UpdateRequirement applies a partial update over the allow-listed fields.
// PATCH /api/v1/requirements/:id
func UpdateRequirement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requirement id"})
		return
	}

	var patch models.UpdateRequirementRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requirement, svcErr := services.NewRequirementService(nil).Update(c.Request.Context(), id, patch)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Document requirement updated successfully",
		"requirement": requirement,
	})
}

// DeleteRequirement removes a single requirement row.
// DELETE /api/v1/requirements/:id
func DeleteRequirement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requirement id"})
		return
	}

	if svcErr := services.NewRequirementService(nil).Delete(c.Request.Context(), id); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Document requirement deleted successfully",
	})
}

// GetContactRequirements returns the requirements applicable to one contact,
// contact-specific rows overriding case-wide rows of the same document name.
// GET /api/v1/cases/:case_ref/contacts/:contact_id/requirements
func GetContactRequirements(c *gin.Context) {
	ref, ok := caseRefParam(c)
	if !ok {
		return
	}
	contactID, err := strconv.Atoi(c.Param("contact_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact id"})
		return
	}

	requirements, svcErr := services.NewRequirementService(nil).FindForContact(c.Request.Context(), ref, contactID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"requirements": requirements,
		"summary":      models.SummarizeRequirements(requirements),
		"total":        len(requirements),
	})
}

// BulkRemoveRequirementsByName deletes every requirement of the case sharing
// a document name. Protected default names are refused with 409.
// DELETE /api/v1/cases/:case_ref/requirements?document_name=...
func BulkRemoveRequirementsByName(c *gin.Context) {
	ref, ok := caseRefParam(c)
	if !ok {
		return
	}
	documentName := c.Query("document_name")

	deleted, err := services.NewRequirementService(nil).BulkDeleteByName(c.Request.Context(), ref, documentName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Document requirements removed",
		"deleted_count": deleted,
	})
}
