// controllers/provenance.go
package controllers

import (
	"net/http"
	"strconv"

	"case-docs-api/models"
	"case-docs-api/services"

	"github.com/gin-gonic/gin"
)

// UpdateRequirementStatus transitions a requirement's status.
// PUT /api/v1/requirements/:id/status
func UpdateRequirementStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requirement id"})
		return
	}

	var req models.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	change, svcErr := services.NewStatusService(nil).SetStatus(c.Request.Context(), id, req.Status, currentActor(c), req.Reason)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Status updated successfully",
		"previous_status": change.PreviousStatus,
		"requirement":     change.Requirement,
	})
}

// UpdateRequirementProvenance records a requested_from / received_from change.
// PUT /api/v1/requirements/:id/provenance
func UpdateRequirementProvenance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requirement id"})
		return
	}

	var req models.ProvenanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, svcErr := services.Audit().RecordProvenanceChange(
		c.Request.Context(),
		id,
		models.ProvenanceField(req.Field),
		req.Value,
		currentActor(c),
		req.Reason,
	)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Provenance updated successfully",
		"entry":   entry,
	})
}

// GetRequirementHistory returns a requirement's provenance history,
// newest first.
// GET /api/v1/requirements/:id/history
func GetRequirementHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requirement id"})
		return
	}

	entries, svcErr := services.Audit().HistoryForRequirement(c.Request.Context(), id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": entries,
		"total":   len(entries),
	})
}

// GetCaseHistory returns the provenance history across all requirements of a
// case, newest first.
// GET /api/v1/cases/:case_ref/history
func GetCaseHistory(c *gin.Context) {
	ref, ok := caseRefParam(c)
	if !ok {
		return
	}

	entries, err := services.Audit().HistoryForCase(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": entries,
		"total":   len(entries),
	})
}
