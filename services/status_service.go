package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"case-docs-api/config"
	"case-docs-api/models"

	"gorm.io/gorm"
)

// StatusService applies requirement status transitions. The business rule is
// deliberately permissive: any status may move to any other status so
// handlers can correct mistakes. The transition still runs through a single
// closed function so a stricter rule table has one place to land.
type StatusService struct {
	db *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	if db == nil {
		db = config.DB
	}
	return &StatusService{db: db}
}

// StatusChange reports the outcome of a transition.
type StatusChange struct {
	PreviousStatus string                      `json:"previous_status"`
	Requirement    *models.DocumentRequirement `json:"requirement"`
}

// ApplyStatus moves a requirement into newStatus and applies the timestamp
// side effects: entering received stamps received_date iff unset, entering
// approved stamps approved_date iff unset. Returns the previous status.
func ApplyStatus(req *models.DocumentRequirement, newStatus string, now time.Time) string {
	previous := req.Status
	req.Status = newStatus

	switch newStatus {
	case models.StatusReceived:
		if req.ReceivedDate == nil {
			stamp := now
			req.ReceivedDate = &stamp
		}
	case models.StatusApproved:
		if req.ApprovedDate == nil {
			stamp := now
			req.ApprovedDate = &stamp
		}
	case models.StatusMissing, models.StatusPending, models.StatusRejected:
		// No timestamp side effects; existing stamps are never reset.
	}
	return previous
}

// SetStatus transitions a requirement and records the change in the audit
// history. Status change, date stamps and the history row commit as one
// atomic unit: either all of it lands or none of it does.
func (s *StatusService) SetStatus(ctx context.Context, requirementID int, newStatus string, actor models.ActorRef, reason *string) (*StatusChange, error) {
	if !models.IsStatusValid(newStatus) {
		return nil, &models.ValidationError{Field: "status", Message: "unknown status " + strconv.Quote(newStatus)}
	}

	var change StatusChange
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.DocumentRequirement
		if err := tx.First(&req, requirementID).Error; err != nil {
			return err
		}

		now := time.Now()
		previous := ApplyStatus(&req, newStatus, now)

		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		entry := models.ProvenanceChangeEntry{
			RequirementID: req.RequirementID,
			CaseID:        req.CaseID,
			LegacyCaseID:  req.LegacyCaseID,
			Field:         string(models.FieldStatus),
			OldValue:      &previous,
			NewValue:      &req.Status,
			ActorUserID:   actor.UserID,
			ActorName:     resolveActorName(tx, actor),
			Reason:        reason,
			ChangedAt:     now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		change.PreviousStatus = previous
		change.Requirement = &req
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Resource: "requirement", Ref: strconv.Itoa(requirementID)}
	}
	if err != nil {
		return nil, &models.StoreError{Op: "set status", Err: err}
	}
	return &change, nil
}
