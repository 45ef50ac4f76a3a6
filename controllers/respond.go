package controllers

import (
	"errors"
	"log"
	"net/http"

	"case-docs-api/models"

	"github.com/gin-gonic/gin"
)

// currentActor builds the acting handler identity from the auth middleware's
// context values. Requests authenticated by name only (service tokens) still
// produce a usable free-text actor.
func currentActor(c *gin.Context) models.ActorRef {
	var actor models.ActorRef
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(int); ok {
			actor.UserID = &id
		}
	}
	if v, exists := c.Get("userName"); exists {
		if name, ok := v.(string); ok {
			actor.Name = name
		}
	}
	return actor
}

// respondError maps the error taxonomy onto HTTP statuses. Store failures
// keep their detail in the log, not in the response body.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		conflictErr   *models.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// caseRefParam resolves the :case_ref path parameter.
func caseRefParam(c *gin.Context) (models.CaseRef, bool) {
	ref, err := models.ResolveCaseRef(c.Param("case_ref"))
	if err != nil {
		respondError(c, err)
		return models.CaseRef{}, false
	}
	return ref, true
}
