package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"case-docs-api/models"
)

func TestApplyStatusPermissiveTransitions(t *testing.T) {
	now := time.Now()
	req := &models.DocumentRequirement{Status: models.StatusApproved}

	// Correcting a mistaken approval back to missing is allowed
	previous := ApplyStatus(req, models.StatusMissing, now)
	if previous != models.StatusApproved || req.Status != models.StatusMissing {
		t.Fatalf("transition approved -> missing refused: previous=%q status=%q", previous, req.Status)
	}

	for _, status := range models.ValidStatuses() {
		r := &models.DocumentRequirement{Status: models.StatusRejected}
		ApplyStatus(r, status, now)
		if r.Status != status {
			t.Errorf("transition rejected -> %s refused", status)
		}
	}
}

func TestSetStatusStampsReceivedAndApprovedOnce(t *testing.T) {
	db := newTestDB(t)
	store := NewRequirementService(db)
	svc := NewStatusService(db)
	ref := seedCase(t, db)
	req := mustCreateRequirement(t, store, ref, nil, "Birth Certificate", models.ActorRef{Name: "intake"})
	actor := models.ActorRef{Name: "intake"}

	received, err := svc.SetStatus(context.Background(), req.RequirementID, models.StatusReceived, actor, nil)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if received.PreviousStatus != models.StatusPending {
		t.Errorf("previous status = %q, want pending", received.PreviousStatus)
	}
	if received.Requirement.ReceivedDate == nil {
		t.Fatalf("received_date not stamped")
	}
	firstReceived := *received.Requirement.ReceivedDate

	approved, err := svc.SetStatus(context.Background(), req.RequirementID, models.StatusApproved, actor, nil)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if approved.Requirement.ApprovedDate == nil {
		t.Fatalf("approved_date not stamped")
	}
	if approved.Requirement.ReceivedDate == nil || !sameStamp(*approved.Requirement.ReceivedDate, firstReceived) {
		t.Errorf("received_date changed by a later transition")
	}

	// Re-entering received must not reset the original stamp. The sleep keeps
	// an erroneous re-stamp clearly distinguishable from the original.
	time.Sleep(20 * time.Millisecond)
	if _, err := svc.SetStatus(context.Background(), req.RequirementID, models.StatusPending, actor, nil); err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	again, err := svc.SetStatus(context.Background(), req.RequirementID, models.StatusReceived, actor, nil)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if again.Requirement.ReceivedDate == nil || !sameStamp(*again.Requirement.ReceivedDate, firstReceived) {
		t.Errorf("received_date reset on repeated transition: %v want %v", again.Requirement.ReceivedDate, firstReceived)
	}
}

// sameStamp compares timestamps tolerating storage precision loss.
func sameStamp(a, b time.Time) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff < 5*time.Millisecond
}

func TestSetStatusValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db)
	ref := seedCase(t, db)
	req := mustCreateRequirement(t, NewRequirementService(db), ref, nil, "Birth Certificate", models.ActorRef{Name: "intake"})

	_, err := svc.SetStatus(context.Background(), req.RequirementID, "archived", models.ActorRef{Name: "intake"}, nil)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}

	_, err = svc.SetStatus(context.Background(), 99999, models.StatusReceived, models.ActorRef{Name: "intake"}, nil)
	var nferr *models.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError for absent requirement, got %v", err)
	}
}

func TestSetStatusWritesHistory(t *testing.T) {
	db := newTestDB(t)
	store := NewRequirementService(db)
	svc := NewStatusService(db)
	audit := NewAuditService(db)
	ref := seedCase(t, db)
	userID := seedUser(t, db, "Dana", "Levi")
	req := mustCreateRequirement(t, store, ref, nil, "Birth Certificate", models.ActorRef{Name: "intake"})

	reason := "received by courier"
	if _, err := svc.SetStatus(context.Background(), req.RequirementID, models.StatusReceived, models.ActorRef{UserID: intPtr(userID)}, &reason); err != nil {
		t.Fatalf("set status failed: %v", err)
	}

	entries, err := audit.HistoryForRequirement(context.Background(), req.RequirementID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d history entries, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Field != string(models.FieldStatus) {
		t.Errorf("field = %q, want status", entry.Field)
	}
	if entry.OldValue == nil || *entry.OldValue != models.StatusPending {
		t.Errorf("old value = %v, want pending", entry.OldValue)
	}
	if entry.NewValue == nil || *entry.NewValue != models.StatusReceived {
		t.Errorf("new value = %v, want received", entry.NewValue)
	}
	if entry.ActorName != "Dana Levi" {
		t.Errorf("actor name = %q, want resolved display name", entry.ActorName)
	}
	if entry.Reason == nil || *entry.Reason != reason {
		t.Errorf("reason = %v, want %q", entry.Reason, reason)
	}
}
