package services

import (
	"context"
	"math"

	"case-docs-api/config"
	"case-docs-api/models"

	"gorm.io/gorm"
)

// CompletionService computes document completion metrics. Nothing is cached:
// every read recomputes from current store state.
type CompletionService struct {
	db    *gorm.DB
	store *RequirementService
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	if db == nil {
		db = config.DB
	}
	return &CompletionService{db: db, store: NewRequirementService(db)}
}

// CompletionStats is the completion metric triple. Percentage is 0 when
// nothing is required; there is no division by zero.
type CompletionStats struct {
	Required   int `json:"required"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

func completionFrom(requirements []models.DocumentRequirement) CompletionStats {
	var stats CompletionStats
	for _, req := range requirements {
		if !req.IsRequired {
			continue
		}
		stats.Required++
		if models.IsCompletedStatus(req.Status) {
			stats.Completed++
		}
	}
	if stats.Required == 0 {
		return stats
	}
	stats.Percentage = int(math.Round(float64(stats.Completed) / float64(stats.Required) * 100))
	return stats
}

// PerContact computes completion over the requirements applicable to one
// contact, after the specific-overrides-general collapse.
func (s *CompletionService) PerContact(ctx context.Context, ref models.CaseRef, contactID int) (*CompletionStats, error) {
	effective, err := s.store.FindForContact(ctx, ref, contactID)
	if err != nil {
		return nil, err
	}
	stats := completionFrom(effective)
	return &stats, nil
}

// PerCase computes completion over every requirement row of the case:
// contact-specific rows plus case-wide rows, each case-wide row counted once
// per case rather than once per contact.
func (s *CompletionService) PerCase(ctx context.Context, ref models.CaseRef) (*CompletionStats, error) {
	if err := s.store.caseExists(ctx, ref); err != nil {
		return nil, err
	}

	var rows []models.DocumentRequirement
	err := s.db.WithContext(ctx).
		Where(caseColumn(ref)+" = ?", ref.ID).
		Find(&rows).Error
	if err != nil {
		return nil, &models.StoreError{Op: "load case requirements", Schema: ref.Schema, Err: err}
	}

	stats := completionFrom(rows)
	return &stats, nil
}
